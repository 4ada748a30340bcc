package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository returns a gorm-backed implementation.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	record := userToRecord(user)
	if record.ID == "" {
		record.ID = newID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return translateGormError(err)
	}
	user.ID = record.ID
	user.CreatedAt = record.CreatedAt
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *gormUserRepository) first(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&record).Error; err != nil {
		return nil, translateGormError(err)
	}
	return record.toDomain(), nil
}
