package service

import (
	"context"
	"sync"
	"time"

	"gymwell/gym-app/internal/domain"
)

var (
	student     = domain.Caller{ID: 10, Role: domain.RoleStudent}
	colaborador = domain.Caller{ID: 11, Role: domain.RoleColaborador}
	trainer     = domain.Caller{ID: 20, Role: domain.RoleTrainer}
	admin       = domain.Caller{ID: 1, Role: domain.RoleAdmin}
)

func ptr[T any](v T) *T {
	return &v
}

func seedExercises() []domain.Exercise {
	return []domain.Exercise{
		{ID: 1, Name: "Squat", Type: domain.ExerciseStrength, Difficulty: domain.DifficultyMedium},
		{ID: 2, Name: "Rowing", Type: domain.ExerciseCardio, Difficulty: domain.DifficultyEasy},
		{ID: 5, Name: "Hip opener", Type: domain.ExerciseMobility, Difficulty: domain.DifficultyEasy},
	}
}

// fakeStorage records deletions and serves objects from a fixed base URL.
type fakeStorage struct {
	mu      sync.Mutex
	base    string
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{base: "https://videos.test/gym"}
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	return f.base + "/" + key + "?signed=1&ct=" + contentType, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) ObjectURL(key string) string {
	return f.base + "/" + key
}

func (f *fakeStorage) KeyFromURL(url string) (string, bool) {
	prefix := f.base + "/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return "", false
	}
	return url[len(prefix):], true
}
