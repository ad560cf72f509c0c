package service

import (
	"context"

	"secret-santa-backend/internal/features/exchange/models"
	usermodels "secret-santa-backend/internal/features/user/models"
)

type DrawService interface {
	// Draw pairs every registered participant and replaces the exchange's assignment set.
	Draw(ctx context.Context, exchangeID string) (*models.DrawResult, error)
	// Reset removes the exchange's assignment set and reports how many assignments it held.
	Reset(ctx context.Context, exchangeID string) (int, error)
	ListAssignments(ctx context.Context, exchangeID string) (*models.AssignmentsResponse, error)
	GetAssignment(ctx context.Context, exchangeID, giverID string) (*models.AssignmentResponse, error)
	ListExchanges(ctx context.Context) ([]models.ExchangeSummary, error)
}

// Participants is the registry a draw reads from. The user service satisfies it.
type Participants interface {
	ParticipantIDs(ctx context.Context) ([]string, error)
	GetUser(ctx context.Context, id string) (*usermodels.UserResponse, error)
}
