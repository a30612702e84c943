package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gymwell/gym-app/internal/apperror"
	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"
)

type RecommendationInput struct {
	UserID  *int64
	Content string
}

type RecommendationService interface {
	Create(ctx context.Context, caller domain.Caller, input RecommendationInput) (*domain.Recommendation, error)
	List(ctx context.Context, caller domain.Caller, filter domain.RecommendationFilter) ([]domain.Recommendation, error)
}

type recommendationService struct {
	recRepo    repository.RecommendationRepository
	identities repository.IdentityRepository
	now        func() time.Time
}

func NewRecommendationService(recRepo repository.RecommendationRepository, identities repository.IdentityRepository) RecommendationService {
	return &recommendationService{
		recRepo:    recRepo,
		identities: identities,
		now:        time.Now,
	}
}

func (s *recommendationService) Create(ctx context.Context, caller domain.Caller, input RecommendationInput) (*domain.Recommendation, error) {
	if input.UserID == nil || *input.UserID <= 0 {
		return nil, apperror.Validation("userId is required")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}

	if _, err := s.identities.GetByID(ctx, *input.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, storeError("get identity", err)
	}

	rec := &domain.Recommendation{
		TrainerID: caller.ID,
		UserID:    *input.UserID,
		Date:      s.now().UTC(),
		Content:   content,
	}
	if _, err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, storeError("create recommendation", err)
	}
	return rec, nil
}

// List pins members to recommendations addressed to them.
func (s *recommendationService) List(ctx context.Context, caller domain.Caller, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	filter.UserID = ScopeUserID(caller, filter.UserID)

	recs, err := s.recRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError("list recommendations", err)
	}
	return recs, nil
}
