package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/validation"
	"secret-santa-backend/internal/features/user/mapper"
	"secret-santa-backend/internal/features/user/models"
	"secret-santa-backend/internal/features/user/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrInvalidUser  = errors.New("invalid user data")
)

type userService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Register(ctx context.Context, input *models.UserCreate) (*models.UserResponse, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidUser)
	}
	name := strings.TrimSpace(input.Name)
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	email := strings.TrimSpace(input.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	if err := validation.ValidateMaxLength(input.Interests, validation.MaxInterestsLength, "interests"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	if err := validation.ValidateMaxLength(input.ProfilePictureURL, validation.MaxURLLength, "profile picture url"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validation.ValidateRole(role, models.RoleUser, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	id := strings.TrimSpace(input.ID)
	if err := validation.ValidateUserID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:                id,
		Name:              name,
		Email:             email,
		ProfilePictureURL: strings.TrimSpace(input.ProfilePictureURL),
		Interests:         strings.TrimSpace(input.Interests),
		Role:              role,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("Participant registered")
	return mapper.ToUserResponse(user), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return mapper.ToUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, input *models.UserUpdate) (*models.UserResponse, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidUser)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		if err := validation.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
		user.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
		user.Email = email
	}
	if url := strings.TrimSpace(input.ProfilePictureURL); url != "" {
		if err := validation.ValidateMaxLength(url, validation.MaxURLLength, "profile picture url"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
		user.ProfilePictureURL = url
	}
	if interests := strings.TrimSpace(input.Interests); interests != "" {
		if err := validation.ValidateMaxLength(interests, validation.MaxInterestsLength, "interests"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
		}
		user.Interests = interests
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("Participant updated")
	return mapper.ToUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context) (*models.UsersResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToUsersResponse(users), nil
}

func (s *userService) ParticipantIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListIDs(ctx)
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("Participant removed")
	return nil
}
