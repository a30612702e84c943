package mongo

import (
	"context"
	"testing"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseRepository(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo := NewMongoExerciseRepository(db)

	maxID, err := repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Zero(t, maxID)

	seed := []domain.Exercise{
		{ID: 1, Name: "Squat", Type: domain.ExerciseStrength, Difficulty: 2},
		{ID: 7, Name: "Rowing", Type: domain.ExerciseCardio, Difficulty: 1},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	maxID, err = repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), maxID)

	err = repo.Create(ctx, &domain.Exercise{ID: 7, Name: "Dup", Type: domain.ExerciseCardio, Difficulty: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := repo.GetByIDs(ctx, []int64{7, 404})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rowing", found[0].Name)

	difficulty := 3
	updated, err := repo.Update(ctx, 1, domain.ExerciseUpdate{Difficulty: &difficulty})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Difficulty)
	assert.Equal(t, "Squat", updated.Name)

	list, err := repo.List(ctx, domain.ExerciseFilter{Difficulty: &difficulty})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.ID)
	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Update(ctx, 1, domain.ExerciseUpdate{Difficulty: &difficulty})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
