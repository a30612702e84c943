package postgres

import (
	"context"
	"errors"

	"gymwell/gym-app/internal/domain"
	"gymwell/gym-app/internal/repository"

	"gorm.io/gorm"
)

type identityRow struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;size:20"`
}

func (identityRow) TableName() string {
	return Schema + ".app_user"
}

func (r *identityRow) ToDomain() *domain.Identity {
	return &domain.Identity{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
	}
}

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

var _ repository.IdentityRepository = (*IdentityRepository)(nil)

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	var row identityRow
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	var row identityRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}
