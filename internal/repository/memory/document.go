package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExerciseRepo struct {
	mu        sync.RWMutex
	exercises map[int64]domain.Exercise
}

func NewExerciseRepo(exercises ...domain.Exercise) *ExerciseRepo {
	r := &ExerciseRepo{exercises: make(map[int64]domain.Exercise)}
	for _, e := range exercises {
		r.exercises[e.ID] = e
	}
	return r
}

func (r *ExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) error {
	if exercise.ID <= 0 || exercise.Name == "" {
		return errors.New("exercise id and name are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.exercises[exercise.ID]; exists {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	if exercise.Videos == nil {
		exercise.Videos = []string{}
	}
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *ExerciseRepo) GetByID(_ context.Context, id int64) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *ExerciseRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Exercise, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.exercises[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *ExerciseRepo) List(_ context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Difficulty != nil && e.Difficulty != *filter.Difficulty {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ExerciseRepo) MaxID(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max int64
	for id := range r.exercises {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (r *ExerciseRepo) Update(_ context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		e.Name = *update.Name
	}
	if update.Type != nil {
		e.Type = *update.Type
	}
	if update.Description != nil {
		e.Description = *update.Description
	}
	if update.Duration != nil {
		d := *update.Duration
		e.Duration = &d
	}
	if update.Difficulty != nil {
		e.Difficulty = *update.Difficulty
	}
	if update.Videos != nil {
		e.Videos = append([]string{}, (*update.Videos)...)
	}
	e.UpdatedAt = time.Now().UTC()
	r.exercises[id] = e
	return &e, nil
}

func (r *ExerciseRepo) Delete(_ context.Context, id int64) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.exercises, id)
	return &e, nil
}

type RoutineRepo struct {
	mu       sync.RWMutex
	routines []domain.Routine
}

func NewRoutineRepo(routines ...domain.Routine) *RoutineRepo {
	r := &RoutineRepo{}
	for _, routine := range routines {
		if routine.ID.IsZero() {
			routine.ID = primitive.NewObjectID()
		}
		r.routines = append(r.routines, routine)
	}
	return r
}

func (r *RoutineRepo) Create(_ context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.Name == "" {
		return primitive.NilObjectID, errors.New("routine requires a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	routine.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	if routine.Items == nil {
		routine.Items = []domain.RoutineItem{}
	}
	r.routines = append(r.routines, cloneRoutine(*routine))
	return routine.ID, nil
}

func (r *RoutineRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, routine := range r.routines {
		if routine.ID == id {
			c := cloneRoutine(routine)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *RoutineRepo) List(_ context.Context, filter domain.RoutineFilter) ([]domain.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Routine, 0, len(r.routines))
	for _, routine := range r.routines {
		if filter.UserID != nil && routine.UserID != *filter.UserID {
			continue
		}
		if filter.Predefined != nil && routine.IsPredefined != *filter.Predefined {
			continue
		}
		out = append(out, cloneRoutine(routine))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *RoutineRepo) Adopt(_ context.Context, source *domain.Routine, userID int64) (*domain.Routine, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, routine := range r.routines {
		if routine.UserID == userID && routine.AdoptedFrom != nil && *routine.AdoptedFrom == source.ID {
			c := cloneRoutine(routine)
			return &c, false, nil
		}
	}

	now := time.Now().UTC()
	from := source.ID
	adopted := domain.Routine{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Name:        source.Name,
		Description: source.Description,
		Items:       append([]domain.RoutineItem{}, source.Items...),
		AdoptedFrom: &from,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.routines = append(r.routines, adopted)
	c := cloneRoutine(adopted)
	return &c, true, nil
}

// Count returns the number of stored routines.
func (r *RoutineRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routines)
}

func cloneRoutine(routine domain.Routine) domain.Routine {
	routine.Items = append([]domain.RoutineItem{}, routine.Items...)
	for i := range routine.Items {
		routine.Items[i].Exercise = nil
	}
	return routine
}

type ProgressRepo struct {
	mu   sync.RWMutex
	logs []domain.ProgressLog
}

func NewProgressRepo() *ProgressRepo {
	return &ProgressRepo{}
}

func (r *ProgressRepo) Create(_ context.Context, log *domain.ProgressLog) (primitive.ObjectID, error) {
	if log.RoutineID.IsZero() || log.UserID == 0 {
		return primitive.NilObjectID, errors.New("progress log requires routineId and userId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()
	stored := *log
	stored.Exercise = nil
	r.logs = append(r.logs, stored)
	return log.ID, nil
}

func (r *ProgressRepo) List(_ context.Context, filter domain.ProgressFilter) ([]domain.ProgressLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ProgressLog, 0, len(r.logs))
	for _, l := range r.logs {
		if filter.RoutineID != nil && l.RoutineID != *filter.RoutineID {
			continue
		}
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type RecommendationRepo struct {
	mu   sync.RWMutex
	recs []domain.Recommendation
}

func NewRecommendationRepo() *RecommendationRepo {
	return &RecommendationRepo{}
}

func (r *RecommendationRepo) Create(_ context.Context, rec *domain.Recommendation) (primitive.ObjectID, error) {
	if rec.TrainerID == 0 || rec.UserID == 0 || rec.Content == "" {
		return primitive.NilObjectID, errors.New("recommendation requires trainerId, userId and content")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.recs = append(r.recs, *rec)
	return rec.ID, nil
}

func (r *RecommendationRepo) List(_ context.Context, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Recommendation, 0, len(r.recs))
	for _, rec := range r.recs {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if filter.TrainerID != nil && rec.TrainerID != *filter.TrainerID {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

var (
	_ repository.IdentityRepository       = (*IdentityRepo)(nil)
	_ repository.AssignmentRepository     = (*AssignmentRepo)(nil)
	_ repository.StatsRepository          = (*StatsRepo)(nil)
	_ repository.ExerciseRepository       = (*ExerciseRepo)(nil)
	_ repository.RoutineRepository        = (*RoutineRepo)(nil)
	_ repository.ProgressRepository       = (*ProgressRepo)(nil)
	_ repository.RecommendationRepository = (*RecommendationRepo)(nil)
)
