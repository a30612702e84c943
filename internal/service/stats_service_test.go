package service

import (
	"context"
	"testing"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService(t *testing.T) {
	repo := memory.NewStatsRepo()
	repo.Users[student.ID] = []domain.UserMonthlyStat{
		{MonthYear: "2026-02", RoutinesStarted: 4, FollowupsCount: 2},
		{MonthYear: "2026-01", RoutinesStarted: 1},
	}
	repo.Instructors[trainer.ID] = []domain.InstructorMonthlyStat{
		{MonthYear: "2026-01", NewAssignments: 3, FollowupsCount: 7},
	}
	svc := NewStatsService(repo)
	ctx := context.Background()

	own, err := svc.UserStats(ctx, student, student.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "2026-01", own[0].MonthYear)

	_, err = svc.UserStats(ctx, colaborador, student.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	viaTrainer, err := svc.UserStats(ctx, trainer, student.ID)
	require.NoError(t, err)
	assert.Len(t, viaTrainer, 2)

	none, err := svc.UserStats(ctx, admin, 404)
	require.NoError(t, err)
	assert.Empty(t, none)

	inst, err := svc.InstructorStats(ctx, trainer.ID)
	require.NoError(t, err)
	require.Len(t, inst, 1)
	assert.Equal(t, 3, inst[0].NewAssignments)
}
