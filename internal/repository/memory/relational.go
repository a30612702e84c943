// Package memory holds in-memory repository implementations used by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"
)

type IdentityRepo struct {
	mu         sync.RWMutex
	identities map[int64]domain.Identity
}

func NewIdentityRepo(identities ...domain.Identity) *IdentityRepo {
	r := &IdentityRepo{identities: make(map[int64]domain.Identity)}
	for _, id := range identities {
		r.identities[id.ID] = id
	}
	return r
}

func (r *IdentityRepo) Add(identity domain.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities[identity.ID] = identity
}

func (r *IdentityRepo) GetByUsername(_ context.Context, username string) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, identity := range r.identities {
		if identity.Username == username {
			identity := identity
			return &identity, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *IdentityRepo) GetByID(_ context.Context, id int64) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.identities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &identity, nil
}

// AssignmentRepo keeps assignment rows in a slice. InTx works on a staged copy
// that replaces the rows only when fn succeeds.
type AssignmentRepo struct {
	mu     sync.Mutex
	rows   []domain.Assignment
	nextID int64
}

func NewAssignmentRepo() *AssignmentRepo {
	return &AssignmentRepo{nextID: 1}
}

func (r *AssignmentRepo) InTx(ctx context.Context, fn func(tx repository.AssignmentTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := &assignmentTx{
		rows:   append([]domain.Assignment(nil), r.rows...),
		nextID: r.nextID,
	}
	if err := fn(staged); err != nil {
		return err
	}
	r.rows = staged.rows
	r.nextID = staged.nextID
	return nil
}

func (r *AssignmentRepo) ListByUser(_ context.Context, userID int64) ([]domain.Assignment, error) {
	return r.filter(func(a domain.Assignment) bool { return a.UserID == userID }), nil
}

func (r *AssignmentRepo) ListActiveByInstructor(_ context.Context, instructorID int64) ([]domain.Assignment, error) {
	return r.filter(func(a domain.Assignment) bool {
		return a.InstructorID == instructorID && a.Active()
	}), nil
}

// All returns every row in insertion order.
func (r *AssignmentRepo) All() []domain.Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Assignment(nil), r.rows...)
}

func (r *AssignmentRepo) filter(keep func(domain.Assignment) bool) []domain.Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Assignment, 0)
	for _, a := range r.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

type assignmentTx struct {
	rows   []domain.Assignment
	nextID int64
}

func (t *assignmentTx) CloseActive(_ context.Context, userID int64, endDate time.Time) (int64, error) {
	var closed int64
	for i := range t.rows {
		if t.rows[i].UserID == userID && t.rows[i].Active() {
			end := endDate
			t.rows[i].EndDate = &end
			closed++
		}
	}
	return closed, nil
}

func (t *assignmentTx) Create(_ context.Context, assignment *domain.Assignment) error {
	if assignment.Active() {
		for _, a := range t.rows {
			if a.UserID == assignment.UserID && a.Active() {
				return repository.ErrDuplicate
			}
		}
	}
	assignment.ID = t.nextID
	t.nextID++
	t.rows = append(t.rows, *assignment)
	return nil
}

type StatsRepo struct {
	Users       map[int64][]domain.UserMonthlyStat
	Instructors map[int64][]domain.InstructorMonthlyStat
}

func NewStatsRepo() *StatsRepo {
	return &StatsRepo{
		Users:       make(map[int64][]domain.UserMonthlyStat),
		Instructors: make(map[int64][]domain.InstructorMonthlyStat),
	}
}

func (r *StatsRepo) UserMonthly(_ context.Context, userID int64) ([]domain.UserMonthlyStat, error) {
	stats := append([]domain.UserMonthlyStat{}, r.Users[userID]...)
	sort.Slice(stats, func(i, j int) bool { return stats[i].MonthYear < stats[j].MonthYear })
	return stats, nil
}

func (r *StatsRepo) InstructorMonthly(_ context.Context, instructorID int64) ([]domain.InstructorMonthlyStat, error) {
	stats := append([]domain.InstructorMonthlyStat{}, r.Instructors[instructorID]...)
	sort.Slice(stats, func(i, j int) bool { return stats[i].MonthYear < stats[j].MonthYear })
	return stats, nil
}
