package service

import (
	"context"

	"secret-santa-backend/internal/features/user/models"
)

type UserService interface {
	Register(ctx context.Context, input *models.UserCreate) (*models.UserResponse, error)
	GetUser(ctx context.Context, id string) (*models.UserResponse, error)
	UpdateUser(ctx context.Context, id string, input *models.UserUpdate) (*models.UserResponse, error)
	ListUsers(ctx context.Context) (*models.UsersResponse, error)
	// ParticipantIDs returns the ids a draw pairs up.
	ParticipantIDs(ctx context.Context) ([]string, error)
	DeleteUser(ctx context.Context, id string) error
}
