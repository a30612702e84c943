package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errRoutineNotFound = apperror.NotFound("routine not found")

// RoutineItemInput is one requested routine item. Nil fields are missing.
type RoutineItemInput struct {
	ExerciseID *int64
	Order      *int
	Sets       *int
	Reps       *int
	Duration   *int
	Rest       *int
}

type RoutineInput struct {
	Name         string
	Description  string
	IsPredefined bool
	Items        []RoutineItemInput
}

type RoutineService interface {
	List(ctx context.Context, caller domain.Caller, filter domain.RoutineFilter) ([]domain.Routine, error)
	Create(ctx context.Context, caller domain.Caller, input RoutineInput) (*domain.Routine, error)
	// Adopt copies a predefined routine into the caller's routines. created is
	// false when the caller already owned a copy, which is returned instead.
	Adopt(ctx context.Context, caller domain.Caller, routineID string) (routine *domain.Routine, created bool, err error)
}

type routineService struct {
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
}

func NewRoutineService(routineRepo repository.RoutineRepository, exerciseRepo repository.ExerciseRepository) RoutineService {
	return &routineService{
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *routineService) List(ctx context.Context, caller domain.Caller, filter domain.RoutineFilter) ([]domain.Routine, error) {
	filter.UserID = ScopeUserID(caller, filter.UserID)

	routines, err := s.routineRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError("list routines", err)
	}

	var ids []int64
	for i := range routines {
		ids = append(ids, routines[i].ExerciseIDs()...)
	}
	index, err := exerciseIndex(ctx, s.exerciseRepo, distinctIDs(ids))
	if err != nil {
		return nil, storeError("populate routine exercises", err)
	}
	for i := range routines {
		for j := range routines[i].Items {
			routines[i].Items[j].Exercise = index[routines[i].Items[j].ExerciseID]
		}
	}
	return routines, nil
}

func (s *routineService) Create(ctx context.Context, caller domain.Caller, input RoutineInput) (*domain.Routine, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	items := make([]domain.RoutineItem, 0, len(input.Items))
	ids := make([]int64, 0, len(input.Items))
	for i, in := range input.Items {
		item, err := buildRoutineItem(i, in)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		ids = append(ids, item.ExerciseID)
	}

	index, err := exerciseIndex(ctx, s.exerciseRepo, distinctIDs(ids))
	if err != nil {
		return nil, storeError("resolve routine exercises", err)
	}
	for _, item := range items {
		if _, ok := index[item.ExerciseID]; !ok {
			return nil, apperror.Validation("exercise %d does not exist", item.ExerciseID)
		}
	}

	owner := caller.ID
	if input.IsPredefined {
		owner = domain.PredefinedOwner
	}
	routine := &domain.Routine{
		UserID:       owner,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Items:        items,
		IsPredefined: input.IsPredefined,
		CreatedBy:    caller.ID,
	}
	if _, err := s.routineRepo.Create(ctx, routine); err != nil {
		return nil, storeError("create routine", err)
	}

	for i := range routine.Items {
		routine.Items[i].Exercise = index[routine.Items[i].ExerciseID]
	}
	return routine, nil
}

func buildRoutineItem(pos int, in RoutineItemInput) (domain.RoutineItem, error) {
	if in.ExerciseID == nil {
		return domain.RoutineItem{}, apperror.Validation("exercises[%d].exerciseId is required", pos)
	}

	fields := []struct {
		name  string
		value *int
	}{
		{"order", in.Order},
		{"sets", in.Sets},
		{"reps", in.Reps},
		{"duration", in.Duration},
		{"rest", in.Rest},
	}
	for _, f := range fields {
		if f.value == nil {
			return domain.RoutineItem{}, apperror.Validation("exercises[%d].%s is required", pos, f.name)
		}
		if *f.value < 0 {
			return domain.RoutineItem{}, apperror.Validation("exercises[%d].%s must be >= 0", pos, f.name)
		}
	}

	return domain.RoutineItem{
		ExerciseID: *in.ExerciseID,
		Order:      *in.Order,
		Sets:       *in.Sets,
		Reps:       *in.Reps,
		Duration:   *in.Duration,
		Rest:       *in.Rest,
	}, nil
}

func (s *routineService) Adopt(ctx context.Context, caller domain.Caller, routineID string) (*domain.Routine, bool, error) {
	id, err := primitive.ObjectIDFromHex(routineID)
	if err != nil {
		return nil, false, errRoutineNotFound
	}

	source, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, errRoutineNotFound
		}
		return nil, false, storeError("get routine", err)
	}
	if !source.IsPredefined {
		return nil, false, errRoutineNotFound
	}

	adopted, created, err := s.routineRepo.Adopt(ctx, source, caller.ID)
	if err != nil {
		return nil, false, storeError(fmt.Sprintf("adopt routine %s", routineID), err)
	}
	return adopted, created, nil
}
