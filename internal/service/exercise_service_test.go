package service

import (
	"context"
	"strings"
	"testing"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseService_CreateAssignsSequentialIDs(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepo(), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, trainer, ExerciseInput{Name: "Plank", Type: "strength", Difficulty: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, trainer.ID, first.CreatedBy)

	second, err := svc.Create(ctx, trainer, ExerciseInput{Name: "Run", Type: "cardio", Difficulty: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	explicit, err := svc.Create(ctx, admin, ExerciseInput{ID: ptr(int64(40)), Name: "Stretch", Type: "mobility", Difficulty: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(40), explicit.ID)

	next, err := svc.Create(ctx, admin, ExerciseInput{Name: "Lunge", Type: "strength", Difficulty: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(41), next.ID)
}

func TestExerciseService_CreateValidation(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepo(seedExercises()...), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ExerciseInput
		kind  error
	}{
		{"missing name", ExerciseInput{Type: "cardio", Difficulty: ptr(1)}, apperror.ErrValidation},
		{"blank name", ExerciseInput{Name: "   ", Type: "cardio", Difficulty: ptr(1)}, apperror.ErrValidation},
		{"missing type", ExerciseInput{Name: "x", Difficulty: ptr(1)}, apperror.ErrValidation},
		{"unknown type", ExerciseInput{Name: "x", Type: "yoga", Difficulty: ptr(1)}, apperror.ErrValidation},
		{"missing difficulty", ExerciseInput{Name: "x", Type: "cardio"}, apperror.ErrValidation},
		{"difficulty out of range", ExerciseInput{Name: "x", Type: "cardio", Difficulty: ptr(4)}, apperror.ErrValidation},
		{"negative duration", ExerciseInput{Name: "x", Type: "cardio", Difficulty: ptr(1), Duration: ptr(-1)}, apperror.ErrValidation},
		{"non-positive id", ExerciseInput{ID: ptr(int64(0)), Name: "x", Type: "cardio", Difficulty: ptr(1)}, apperror.ErrValidation},
		{"duplicate id", ExerciseInput{ID: ptr(int64(2)), Name: "x", Type: "cardio", Difficulty: ptr(1)}, apperror.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, trainer, tt.input)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestExerciseService_CreateNormalizesVideos(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepo(), nil)

	ex, err := svc.Create(context.Background(), trainer, ExerciseInput{
		Name:       "  Burpee ",
		Type:       "cardio",
		Difficulty: ptr(2),
		Videos:     []string{" https://v.test/a.mp4 ", "", "   ", "https://v.test/b.mp4"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Burpee", ex.Name)
	assert.Equal(t, []string{"https://v.test/a.mp4", "https://v.test/b.mp4"}, ex.Videos)
}

func TestExerciseService_List(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepo(seedExercises()...), nil)
	ctx := context.Background()

	all, err := svc.List(ctx, domain.ExerciseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 5}, []int64{all[0].ID, all[1].ID, all[2].ID})

	easy, err := svc.List(ctx, domain.ExerciseFilter{Difficulty: ptr(1)})
	require.NoError(t, err)
	assert.Len(t, easy, 2)

	cardio, err := svc.List(ctx, domain.ExerciseFilter{Type: domain.ExerciseCardio})
	require.NoError(t, err)
	require.Len(t, cardio, 1)
	assert.Equal(t, "Rowing", cardio[0].Name)
}

func TestExerciseService_Update(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepo(seedExercises()...), nil)
	ctx := context.Background()

	updated, err := svc.Update(ctx, 1, domain.ExerciseUpdate{Name: ptr("Front squat"), Difficulty: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Front squat", updated.Name)
	assert.Equal(t, 3, updated.Difficulty)
	assert.Equal(t, domain.ExerciseStrength, updated.Type)

	_, err = svc.Update(ctx, 999, domain.ExerciseUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Update(ctx, 1, domain.ExerciseUpdate{})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	badType := domain.ExerciseType("dance")
	_, err = svc.Update(ctx, 1, domain.ExerciseUpdate{Type: &badType})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestExerciseService_DeleteRemovesOwnVideos(t *testing.T) {
	store := newFakeStorage()
	repo := memory.NewExerciseRepo(domain.Exercise{
		ID:         7,
		Name:       "Deadlift",
		Type:       domain.ExerciseStrength,
		Difficulty: 3,
		Videos:     []string{store.ObjectURL("exercises/7/a.mp4"), "https://youtube.test/watch?v=1"},
	})
	svc := NewExerciseService(repo, store)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 7))
	assert.Equal(t, []string{"exercises/7/a.mp4"}, store.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, 7), apperror.ErrNotFound)
}

func TestExerciseService_RequestVideoUpload(t *testing.T) {
	store := newFakeStorage()
	svc := NewExerciseService(memory.NewExerciseRepo(seedExercises()...), store)
	ctx := context.Background()

	upload, err := svc.RequestVideoUpload(ctx, 1, "My Clip.MP4", "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.ObjectKey, "exercises/1/"))
	assert.True(t, strings.HasSuffix(upload.ObjectKey, ".mp4"))
	assert.Equal(t, store.ObjectURL(upload.ObjectKey), upload.VideoURL)
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	_, err = svc.RequestVideoUpload(ctx, 1, "doc.pdf", "application/pdf")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.RequestVideoUpload(ctx, 999, "a.mp4", "video/mp4")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	disabled := NewExerciseService(memory.NewExerciseRepo(seedExercises()...), nil)
	_, err = disabled.RequestVideoUpload(ctx, 1, "a.mp4", "video/mp4")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
