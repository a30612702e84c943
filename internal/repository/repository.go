package repository

import (
	"context"
	"time"

	"gymwell/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// --- Relational store ---

// IdentityRepository reads identities from the credential store.
type IdentityRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Identity, error)
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
}

// AssignmentTx is the set of assignment writes allowed inside a transaction.
type AssignmentTx interface {
	// CloseActive sets endDate on the user's open assignment and returns how
	// many rows were closed.
	CloseActive(ctx context.Context, userID int64, endDate time.Time) (int64, error)
	Create(ctx context.Context, assignment *domain.Assignment) error
}

// AssignmentRepository manages trainer assignment history.
type AssignmentRepository interface {
	// InTx runs fn atomically. If fn returns an error nothing is committed.
	InTx(ctx context.Context, fn func(tx AssignmentTx) error) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Assignment, error)
	ListActiveByInstructor(ctx context.Context, instructorID int64) ([]domain.Assignment, error)
}

// StatsRepository reads precomputed monthly aggregates.
type StatsRepository interface {
	UserMonthly(ctx context.Context, userID int64) ([]domain.UserMonthlyStat, error)
	InstructorMonthly(ctx context.Context, instructorID int64) ([]domain.InstructorMonthlyStat, error)
}

// --- Document store ---

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Exercise, error)
	List(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error)
	// MaxID returns the highest exercise id, or 0 when the catalog is empty.
	MaxID(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, update domain.ExerciseUpdate) (*domain.Exercise, error)
	// Delete removes the exercise and returns the deleted document.
	Delete(ctx context.Context, id int64) (*domain.Exercise, error)
}

// RoutineRepository defines the interface for interacting with routine data.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	List(ctx context.Context, filter domain.RoutineFilter) ([]domain.Routine, error)
	// Adopt creates userID's copy of source unless one already exists.
	// created is false when an earlier copy is returned.
	Adopt(ctx context.Context, source *domain.Routine, userID int64) (copy *domain.Routine, created bool, err error)
}

// ProgressRepository defines the interface for interacting with progress logs.
type ProgressRepository interface {
	Create(ctx context.Context, log *domain.ProgressLog) (primitive.ObjectID, error)
	List(ctx context.Context, filter domain.ProgressFilter) ([]domain.ProgressLog, error)
}

// RecommendationRepository defines the interface for interacting with recommendations.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) (primitive.ObjectID, error)
	List(ctx context.Context, filter domain.RecommendationFilter) ([]domain.Recommendation, error)
}
