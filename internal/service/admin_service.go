package service

import (
	"context"
	"errors"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

type AdminService interface {
	// AssignTrainer ends the user's current assignment, if any, and opens a
	// new one with instructorID. Both steps commit together or not at all.
	AssignTrainer(ctx context.Context, userID, instructorID int64) (*domain.Assignment, error)
	ListAssignments(ctx context.Context, userID int64) ([]domain.Assignment, error)
	// ListTrainees returns the active assignments of an instructor. Trainers
	// may only look at their own; a nil instructorID means the caller.
	ListTrainees(ctx context.Context, caller domain.Caller, instructorID *int64) ([]domain.Assignment, error)
}

type adminService struct {
	identities  repository.IdentityRepository
	assignments repository.AssignmentRepository
	now         func() time.Time
}

func NewAdminService(identities repository.IdentityRepository, assignments repository.AssignmentRepository) AdminService {
	return &adminService{
		identities:  identities,
		assignments: assignments,
		now:         time.Now,
	}
}

func (s *adminService) AssignTrainer(ctx context.Context, userID, instructorID int64) (*domain.Assignment, error) {
	if userID <= 0 || instructorID <= 0 {
		return nil, apperror.Validation("userId and instructorId are required")
	}
	if userID == instructorID {
		return nil, apperror.Validation("a user cannot be assigned to themselves")
	}

	if _, err := s.lookup(ctx, userID, "user not found"); err != nil {
		return nil, err
	}
	instructor, err := s.lookup(ctx, instructorID, "instructor not found")
	if err != nil {
		return nil, err
	}
	if instructor.Role != domain.RoleTrainer {
		return nil, apperror.Validation("user %d is not a trainer", instructorID)
	}

	today := domain.DateOnly(s.now())
	assignment := &domain.Assignment{
		UserID:       userID,
		InstructorID: instructorID,
		StartDate:    today,
	}

	err = s.assignments.InTx(ctx, func(tx repository.AssignmentTx) error {
		closed, err := tx.CloseActive(ctx, userID, today)
		if err != nil {
			return err
		}
		if closed > 0 {
			log.Debugf("closed %d active assignment(s) of user %d", closed, userID)
		}
		return tx.Create(ctx, assignment)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("the user's assignment changed concurrently, please retry", err)
		}
		return nil, storeError("assign trainer", err)
	}

	log.Infof("user %d assigned to trainer %d", userID, instructorID)
	return assignment, nil
}

func (s *adminService) ListAssignments(ctx context.Context, userID int64) ([]domain.Assignment, error) {
	if userID <= 0 {
		return nil, apperror.Validation("userId is required")
	}
	assignments, err := s.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list assignments", err)
	}
	return assignments, nil
}

func (s *adminService) ListTrainees(ctx context.Context, caller domain.Caller, instructorID *int64) ([]domain.Assignment, error) {
	id := caller.ID
	if instructorID != nil {
		id = *instructorID
	}
	if caller.Role != domain.RoleAdmin && id != caller.ID {
		return nil, apperror.Forbidden("trainers can only list their own trainees")
	}

	assignments, err := s.assignments.ListActiveByInstructor(ctx, id)
	if err != nil {
		return nil, storeError("list trainees", err)
	}
	return assignments, nil
}

func (s *adminService) lookup(ctx context.Context, id int64, notFound string) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(notFound)
		}
		return nil, storeError("get identity", err)
	}
	return identity, nil
}
