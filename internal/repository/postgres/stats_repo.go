package postgres

import (
	"context"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"gorm.io/gorm"
)

type userMonthlyStatRow struct {
	UserID          int64  `gorm:"primaryKey"`
	MonthYear       string `gorm:"primaryKey;size:7"`
	RoutinesStarted int    `gorm:"not null;default:0"`
	FollowupsCount  int    `gorm:"not null;default:0"`
}

func (userMonthlyStatRow) TableName() string {
	return Schema + ".user_monthly_stats"
}

type instructorMonthlyStatRow struct {
	InstructorID   int64  `gorm:"primaryKey"`
	MonthYear      string `gorm:"primaryKey;size:7"`
	NewAssignments int    `gorm:"not null;default:0"`
	FollowupsCount int    `gorm:"not null;default:0"`
}

func (instructorMonthlyStatRow) TableName() string {
	return Schema + ".instructor_monthly_stats"
}

// StatsRepository reads the precomputed monthly aggregates. The tables are
// filled by jobs outside this service.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

var _ repository.StatsRepository = (*StatsRepository)(nil)

func (r *StatsRepository) UserMonthly(ctx context.Context, userID int64) ([]domain.UserMonthlyStat, error) {
	var rows []userMonthlyStatRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("month_year").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]domain.UserMonthlyStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, domain.UserMonthlyStat{
			MonthYear:       row.MonthYear,
			RoutinesStarted: row.RoutinesStarted,
			FollowupsCount:  row.FollowupsCount,
		})
	}
	return stats, nil
}

func (r *StatsRepository) InstructorMonthly(ctx context.Context, instructorID int64) ([]domain.InstructorMonthlyStat, error) {
	var rows []instructorMonthlyStatRow
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("month_year").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]domain.InstructorMonthlyStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, domain.InstructorMonthlyStat{
			MonthYear:      row.MonthYear,
			NewAssignments: row.NewAssignments,
			FollowupsCount: row.FollowupsCount,
		})
	}
	return stats, nil
}
