package service

import (
	"context"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"
)

type StatsService interface {
	UserStats(ctx context.Context, caller domain.Caller, userID int64) ([]domain.UserMonthlyStat, error)
	InstructorStats(ctx context.Context, instructorID int64) ([]domain.InstructorMonthlyStat, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) UserStats(ctx context.Context, caller domain.Caller, userID int64) ([]domain.UserMonthlyStat, error) {
	if caller.Role.IsMember() && userID != caller.ID {
		return nil, apperror.Forbidden("you can only view your own stats")
	}
	stats, err := s.statsRepo.UserMonthly(ctx, userID)
	if err != nil {
		return nil, storeError("user monthly stats", err)
	}
	return stats, nil
}

func (s *statsService) InstructorStats(ctx context.Context, instructorID int64) ([]domain.InstructorMonthlyStat, error) {
	stats, err := s.statsRepo.InstructorMonthly(ctx, instructorID)
	if err != nil {
		return nil, storeError("instructor monthly stats", err)
	}
	return stats, nil
}
