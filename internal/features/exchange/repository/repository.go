package repository

import (
	"context"
	"errors"
	"time"

	"secret-santa-backend/internal/features/exchange/models"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// AssignmentRepository stores at most one active assignment set per exchange.
type AssignmentRepository interface {
	// Replace atomically drops the exchange's current set and stores assignments.
	// Readers observe either the whole old set or the whole new one.
	Replace(ctx context.Context, exchangeID string, assignments []models.Assignment, drawnAt time.Time) error
	// Clear deletes the exchange's set and returns how many assignments it held.
	Clear(ctx context.Context, exchangeID string) (int, error)
	// List returns the active set ordered by giver id.
	List(ctx context.Context, exchangeID string) ([]models.AssignmentRecord, error)
	GetByGiver(ctx context.Context, exchangeID, giverID string) (*models.AssignmentRecord, error)
	ListExchanges(ctx context.Context) ([]models.ExchangeSummary, error)
}
