package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "avialog/backend/internal/models/gorm"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

func (r *UserRepositoryGORM) CreateUser(ctx context.Context, user *gormModels.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryGORM) GetUserByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryGORM) GetUserByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// UpdateTotals writes the denormalized flight aggregates for a user.
func (r *UserRepositoryGORM) UpdateTotals(ctx context.Context, userID string, totalFlights, totalAirTime int64) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_flights":  totalFlights,
			"total_air_time": totalAirTime,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update user totals: %w", err)
	}
	return nil
}

// ListUserIDs returns the ids of all registered users. Used by the totals
// reconcile job.
func (r *UserRepositoryGORM) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string

	err := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}

	return ids, nil
}
