package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hubertnosek100/hmediator/internal/domain/user"
)

// GormUserRepository implements user.Store using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var model UserModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}

	return modelToUser(&model), nil
}

// List retrieves all users ordered by creation time
func (r *GormUserRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	result := r.db.WithContext(ctx).Order("created_at, id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list users: %w", result.Error)
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		users = append(users, modelToUser(&models[i]))
	}

	return users, nil
}

// Create inserts a new user, failing with user.ErrUserExists on an ID or email conflict
func (r *GormUserRepository) Create(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).Create(userToModel(u))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", user.ErrUserExists, u.ID)
		}
		return fmt.Errorf("failed to create user: %w", result.Error)
	}

	return nil
}

// Save persists a user
func (r *GormUserRepository) Save(ctx context.Context, u *user.User) error {
	// Upsert: create or update
	result := r.db.WithContext(ctx).Save(userToModel(u))
	if result.Error != nil {
		return fmt.Errorf("failed to save user: %w", result.Error)
	}

	return nil
}

func modelToUser(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		CreatedAt: model.CreatedAt,
	}
}

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
