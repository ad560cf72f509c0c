package repository

import (
	"context"
	"errors"

	"secret-santa-backend/internal/features/user/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.User, error)
	// ListIDs returns the ids of all registered users, sorted.
	ListIDs(ctx context.Context) ([]string, error)
}
