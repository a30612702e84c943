package postgres

import (
	"context"
	"errors"
	"time"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type assignmentRow struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	UserID       int64      `gorm:"not null;index"`
	InstructorID int64      `gorm:"not null;index"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	EndDate      *time.Time `gorm:"type:date"`
}

func (assignmentRow) TableName() string {
	return Schema + ".assignment"
}

func (r *assignmentRow) ToDomain() domain.Assignment {
	return domain.Assignment{
		ID:           r.ID,
		UserID:       r.UserID,
		InstructorID: r.InstructorID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)

// InTx runs fn inside a single database transaction.
func (r *AssignmentRepository) InTx(ctx context.Context, fn func(tx repository.AssignmentTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&assignmentTx{db: tx})
	})
}

// ListByUser returns the user's assignment history, newest first.
func (r *AssignmentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Assignment, error) {
	var rows []assignmentRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAssignments(rows), nil
}

func (r *AssignmentRepository) ListActiveByInstructor(ctx context.Context, instructorID int64) ([]domain.Assignment, error) {
	var rows []assignmentRow
	err := r.db.WithContext(ctx).
		Where("instructor_id = ? AND end_date IS NULL", instructorID).
		Order("start_date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAssignments(rows), nil
}

func toAssignments(rows []assignmentRow) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out
}

type assignmentTx struct {
	db *gorm.DB
}

// CloseActive locks the user's open assignment rows before closing them, so
// concurrent reassignments of the same user are serialised.
func (t *assignmentTx) CloseActive(ctx context.Context, userID int64, endDate time.Time) (int64, error) {
	var open []assignmentRow
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND end_date IS NULL", userID).
		Find(&open).Error
	if err != nil {
		return 0, err
	}
	if len(open) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(open))
	for _, row := range open {
		ids = append(ids, row.ID)
	}
	res := t.db.WithContext(ctx).
		Model(&assignmentRow{}).
		Where("id IN ?", ids).
		Update("end_date", endDate)
	return res.RowsAffected, res.Error
}

func (t *assignmentTx) Create(ctx context.Context, assignment *domain.Assignment) error {
	row := assignmentRow{
		UserID:       assignment.UserID,
		InstructorID: assignment.InstructorID,
		StartDate:    assignment.StartDate,
		EndDate:      assignment.EndDate,
	}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return err
	}
	assignment.ID = row.ID
	return nil
}
