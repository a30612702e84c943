package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgressInput struct {
	RoutineID   string
	ExerciseID  *int64
	Repetitions *int
	Duration    *int
	EffortLevel string
	Comments    string
}

// ProgressQuery filters progress listings. Empty RoutineID means any routine.
type ProgressQuery struct {
	RoutineID string
	UserID    *int64
}

type ProgressService interface {
	Create(ctx context.Context, caller domain.Caller, input ProgressInput) (*domain.ProgressLog, error)
	List(ctx context.Context, caller domain.Caller, query ProgressQuery) ([]domain.ProgressLog, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	routineRepo repository.RoutineRepository,
	exerciseRepo repository.ExerciseRepository,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

func (s *progressService) Create(ctx context.Context, caller domain.Caller, input ProgressInput) (*domain.ProgressLog, error) {
	routineID, err := primitive.ObjectIDFromHex(strings.TrimSpace(input.RoutineID))
	if err != nil {
		return nil, apperror.Validation("routineId is not a valid id")
	}

	// Existence and ownership are decided before the payload is looked at.
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errRoutineNotFound
		}
		return nil, storeError("get routine", err)
	}
	if routine.UserID != caller.ID {
		return nil, apperror.Forbidden("you can only log progress on your own routines")
	}

	if input.ExerciseID == nil {
		return nil, apperror.Validation("exerciseId is required")
	}

	effort := domain.EffortMedium
	if input.EffortLevel != "" {
		effort = domain.EffortLevel(input.EffortLevel)
		if !effort.Valid() {
			return nil, apperror.Validation("effortLevel must be one of low, medium, high")
		}
	}
	repetitions, err := nonNegative("repetitions", input.Repetitions)
	if err != nil {
		return nil, err
	}
	duration, err := nonNegative("duration", input.Duration)
	if err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, *input.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Validation("exercise %d does not exist", *input.ExerciseID)
		}
		return nil, storeError("get exercise", err)
	}

	log := &domain.ProgressLog{
		RoutineID:   routineID,
		UserID:      caller.ID,
		ExerciseID:  exercise.ID,
		Date:        s.now().UTC(),
		Repetitions: repetitions,
		Duration:    duration,
		EffortLevel: effort,
		Comments:    strings.TrimSpace(input.Comments),
	}
	if _, err := s.progressRepo.Create(ctx, log); err != nil {
		return nil, storeError("create progress log", err)
	}
	log.Exercise = exercise
	return log, nil
}

func (s *progressService) List(ctx context.Context, caller domain.Caller, query ProgressQuery) ([]domain.ProgressLog, error) {
	filter := domain.ProgressFilter{UserID: ScopeUserID(caller, query.UserID)}
	if query.RoutineID != "" {
		routineID, err := primitive.ObjectIDFromHex(query.RoutineID)
		if err != nil {
			return nil, apperror.Validation("routineId is not a valid id")
		}
		filter.RoutineID = &routineID
	}

	logs, err := s.progressRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError("list progress logs", err)
	}

	ids := make([]int64, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ExerciseID)
	}
	index, err := exerciseIndex(ctx, s.exerciseRepo, distinctIDs(ids))
	if err != nil {
		return nil, storeError("populate progress exercises", err)
	}
	for i := range logs {
		logs[i].Exercise = index[logs[i].ExerciseID]
	}
	return logs, nil
}

func nonNegative(field string, v *int) (int, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, apperror.Validation("%s must be >= 0", field)
	}
	return *v, nil
}
