package service

import (
	"context"
	"testing"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type progressFixture struct {
	svc      ProgressService
	routines RoutineService
	owned    *domain.Routine
}

func newProgressFixture(t *testing.T) progressFixture {
	t.Helper()
	routineRepo := memory.NewRoutineRepo()
	exerciseRepo := memory.NewExerciseRepo(seedExercises()...)
	routines := NewRoutineService(routineRepo, exerciseRepo)

	owned, err := routines.Create(context.Background(), student, RoutineInput{
		Name:  "Mine",
		Items: []RoutineItemInput{validItem(1)},
	})
	require.NoError(t, err)

	return progressFixture{
		svc:      NewProgressService(memory.NewProgressRepo(), routineRepo, exerciseRepo),
		routines: routines,
		owned:    owned,
	}
}

func TestProgressService_Create(t *testing.T) {
	f := newProgressFixture(t)
	before := time.Now().UTC()

	log, err := f.svc.Create(context.Background(), student, ProgressInput{
		RoutineID:   f.owned.ID.Hex(),
		ExerciseID:  ptr(int64(1)),
		Repetitions: ptr(12),
		Duration:    ptr(5),
		Comments:    " felt good ",
	})
	require.NoError(t, err)
	assert.False(t, log.ID.IsZero())
	assert.Equal(t, student.ID, log.UserID)
	assert.Equal(t, domain.EffortMedium, log.EffortLevel)
	assert.Equal(t, "felt good", log.Comments)
	assert.False(t, log.Date.Before(before))
	require.NotNil(t, log.Exercise)
	assert.Equal(t, "Squat", log.Exercise.Name)
}

func TestProgressService_CreateErrors(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	routineID := f.owned.ID.Hex()

	tests := []struct {
		name   string
		caller domain.Caller
		input  ProgressInput
		kind   error
	}{
		{"invalid routine id", student, ProgressInput{RoutineID: "xyz", ExerciseID: ptr(int64(1))}, apperror.ErrValidation},
		{"unknown routine", student, ProgressInput{RoutineID: primitive.NewObjectID().Hex(), ExerciseID: ptr(int64(1))}, apperror.ErrNotFound},
		{"not the owner", colaborador, ProgressInput{RoutineID: routineID, ExerciseID: ptr(int64(1))}, apperror.ErrForbidden},
		{"unknown exercise", student, ProgressInput{RoutineID: routineID, ExerciseID: ptr(int64(404))}, apperror.ErrValidation},
		{"missing exercise", student, ProgressInput{RoutineID: routineID}, apperror.ErrValidation},
		{"bad effort", student, ProgressInput{RoutineID: routineID, ExerciseID: ptr(int64(1)), EffortLevel: "extreme"}, apperror.ErrValidation},
		{"negative reps", student, ProgressInput{RoutineID: routineID, ExerciseID: ptr(int64(1)), Repetitions: ptr(-2)}, apperror.ErrValidation},
		{"bad payload on someone else's routine", colaborador, ProgressInput{RoutineID: routineID, EffortLevel: "extreme", Repetitions: ptr(-2)}, apperror.ErrForbidden},
		{"bad payload on unknown routine", student, ProgressInput{RoutineID: primitive.NewObjectID().Hex(), Duration: ptr(-1)}, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.caller, tt.input)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestProgressService_ListScopesMembers(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	theirs, err := f.routines.Create(ctx, colaborador, RoutineInput{Name: "Theirs", Items: []RoutineItemInput{validItem(2)}})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, student, ProgressInput{RoutineID: f.owned.ID.Hex(), ExerciseID: ptr(int64(1)), EffortLevel: "high"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, colaborador, ProgressInput{RoutineID: theirs.ID.Hex(), ExerciseID: ptr(int64(2))})
	require.NoError(t, err)

	other := colaborador.ID
	mine, err := f.svc.List(ctx, student, ProgressQuery{UserID: &other})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, student.ID, mine[0].UserID)
	assert.Equal(t, domain.EffortHigh, mine[0].EffortLevel)
	require.NotNil(t, mine[0].Exercise)

	all, err := f.svc.List(ctx, trainer, ProgressQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byRoutine, err := f.svc.List(ctx, trainer, ProgressQuery{RoutineID: theirs.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, byRoutine, 1)
	assert.Equal(t, colaborador.ID, byRoutine[0].UserID)

	_, err = f.svc.List(ctx, trainer, ProgressQuery{RoutineID: "bogus"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
