package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/cache"
	"secret-santa-backend/internal/common/validation"
	"secret-santa-backend/internal/features/exchange/events"
	"secret-santa-backend/internal/features/exchange/models"
	"secret-santa-backend/internal/features/exchange/repository"
	"secret-santa-backend/internal/features/pairing"
)

var (
	ErrInvalidExchange       = errors.New("invalid exchange id")
	ErrNotEnoughParticipants = errors.New("not enough participants")
	ErrPairingFailed         = errors.New("pairing failed")
	ErrDrawSaveFailed        = errors.New("failed to save draw")
	ErrParticipantsRead      = errors.New("failed to read participants")
	ErrAssignmentNotFound    = errors.New("assignment not found")
)

// NotEnoughParticipantsError matches ErrNotEnoughParticipants with errors.Is.
type NotEnoughParticipantsError struct {
	Count    int
	Required int
}

func (e *NotEnoughParticipantsError) Error() string {
	return fmt.Sprintf("not enough participants: have %d, need %d", e.Count, e.Required)
}

func (e *NotEnoughParticipantsError) Is(target error) bool {
	return target == ErrNotEnoughParticipants
}

type drawService struct {
	participants Participants
	engine       *pairing.Engine
	repo         repository.AssignmentRepository
	cache        *cache.CacheService
	publisher    events.Publisher
	cacheTTL     time.Duration
	locks        *exchangeLocks
	summaryMu    sync.RWMutex // writers RLock, the exchange list fill Locks
	now          func() time.Time
	logger       zerolog.Logger
}

// NewDrawService wires the draw collaborator. cacheService may be nil to read
// straight from the repository; a nil publisher drops notifications.
func NewDrawService(
	participants Participants,
	engine *pairing.Engine,
	repo repository.AssignmentRepository,
	cacheService *cache.CacheService,
	publisher events.Publisher,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) DrawService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &drawService{
		participants: participants,
		engine:       engine,
		repo:         repo,
		cache:        cacheService,
		publisher:    publisher,
		cacheTTL:     cacheTTL,
		locks:        newExchangeLocks(),
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With().Str("component", "draw_service").Logger(),
	}
}

func validateExchange(exchangeID string) error {
	if err := validation.ValidateExchangeID(exchangeID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	return nil
}

func (s *drawService) Draw(ctx context.Context, exchangeID string) (*models.DrawResult, error) {
	if err := validateExchange(exchangeID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(exchangeID)
	defer unlock()

	ids, err := s.participants.ParticipantIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParticipantsRead, err)
	}
	if len(ids) < pairing.MinParticipants {
		s.logger.Warn().Str("exchange_id", exchangeID).Int("participants", len(ids)).Msg("Draw refused: not enough participants")
		return nil, &NotEnoughParticipantsError{Count: len(ids), Required: pairing.MinParticipants}
	}

	assignments, err := s.engine.ComputeAssignments(ids)
	if err != nil {
		s.logger.Error().Err(err).Str("exchange_id", exchangeID).Msg("Pairing failed")
		return nil, fmt.Errorf("%w: %w", ErrPairingFailed, err)
	}
	if err := pairing.Verify(ids, assignments); err != nil {
		s.logger.Error().Err(err).Str("exchange_id", exchangeID).Msg("Pairing produced an invalid set")
		return nil, fmt.Errorf("%w: %w", ErrPairingFailed, err)
	}

	drawnAt := s.now()
	s.summaryMu.RLock()
	err = s.repo.Replace(ctx, exchangeID, assignments, drawnAt)
	if err == nil {
		s.invalidate(ctx, exchangeID)
	}
	s.summaryMu.RUnlock()
	if err != nil {
		s.logger.Error().Err(err).Str("exchange_id", exchangeID).Msg("Failed to save draw")
		return nil, fmt.Errorf("%w: %w", ErrDrawSaveFailed, err)
	}

	s.publish(ctx, events.Event{Type: events.TypeDrawCompleted, ExchangeID: exchangeID, Count: len(assignments), At: drawnAt})

	s.logger.Info().Str("exchange_id", exchangeID).Int("participants", len(ids)).Msg("Draw completed")
	return &models.DrawResult{
		ExchangeID:        exchangeID,
		ParticipantsCount: len(ids),
		Assignments:       assignments,
		DrawnAt:           drawnAt,
	}, nil
}

func (s *drawService) Reset(ctx context.Context, exchangeID string) (int, error) {
	if err := validateExchange(exchangeID); err != nil {
		return 0, err
	}

	unlock := s.locks.lock(exchangeID)
	defer unlock()

	s.summaryMu.RLock()
	removed, err := s.repo.Clear(ctx, exchangeID)
	if err == nil {
		s.invalidate(ctx, exchangeID)
	}
	s.summaryMu.RUnlock()
	if err != nil {
		s.logger.Error().Err(err).Str("exchange_id", exchangeID).Msg("Failed to reset assignments")
		return 0, err
	}

	s.publish(ctx, events.Event{Type: events.TypeAssignmentsReset, ExchangeID: exchangeID, Count: removed, At: s.now()})

	s.logger.Info().Str("exchange_id", exchangeID).Int("removed", removed).Msg("Assignments reset")
	return removed, nil
}

func (s *drawService) ListAssignments(ctx context.Context, exchangeID string) (*models.AssignmentsResponse, error) {
	if err := validateExchange(exchangeID); err != nil {
		return nil, err
	}

	load := func() (interface{}, error) {
		records, err := s.repo.List(ctx, exchangeID)
		if err != nil {
			return nil, err
		}
		return toAssignmentsResponse(exchangeID, records), nil
	}

	if s.cache == nil {
		v, err := load()
		if err != nil {
			return nil, err
		}
		return v.(*models.AssignmentsResponse), nil
	}

	key := cache.AssignmentsKey(exchangeID)
	var resp models.AssignmentsResponse
	if err := s.cache.Get(ctx, key, &resp); err == nil {
		return &resp, nil
	}

	// The fill runs under the exchange lock so a concurrent draw cannot
	// invalidate between our read and our write.
	unlock := s.locks.lock(exchangeID)
	defer unlock()

	if err := s.cache.GetOrSet(ctx, key, &resp, s.cacheTTL, load); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *drawService) GetAssignment(ctx context.Context, exchangeID, giverID string) (*models.AssignmentResponse, error) {
	if err := validateExchange(exchangeID); err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByGiver(ctx, exchangeID, giverID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	resp := &models.AssignmentResponse{
		ExchangeID: exchangeID,
		GiverID:    rec.UserID,
		ReceiverID: rec.TargetUserID,
	}
	receiver, err := s.participants.GetUser(ctx, rec.TargetUserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("exchange_id", exchangeID).Str("receiver_id", rec.TargetUserID).Msg("Receiver profile unavailable")
	} else {
		resp.Receiver = receiver
	}
	return resp, nil
}

func (s *drawService) ListExchanges(ctx context.Context) ([]models.ExchangeSummary, error) {
	if s.cache == nil {
		return s.repo.ListExchanges(ctx)
	}
	var out []models.ExchangeSummary
	if err := s.cache.Get(ctx, cache.ExchangesKey(), &out); err != nil {
		s.summaryMu.Lock()
		err = s.cache.GetOrSet(ctx, cache.ExchangesKey(), &out, s.cacheTTL, func() (interface{}, error) {
			return s.repo.ListExchanges(ctx)
		})
		s.summaryMu.Unlock()
		if err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = []models.ExchangeSummary{}
	}
	return out, nil
}

func (s *drawService) invalidate(ctx context.Context, exchangeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateExchangeCache(ctx, exchangeID); err != nil {
		s.logger.Warn().Err(err).Str("exchange_id", exchangeID).Msg("Failed to invalidate exchange cache")
	}
}

func (s *drawService) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("exchange_id", ev.ExchangeID).Str("type", ev.Type).Msg("Failed to publish event")
	}
}

func toAssignmentsResponse(exchangeID string, records []models.AssignmentRecord) *models.AssignmentsResponse {
	resp := &models.AssignmentsResponse{
		ExchangeID:  exchangeID,
		Assignments: make([]models.Assignment, 0, len(records)),
	}
	for _, r := range records {
		resp.Assignments = append(resp.Assignments, r.Assignment())
		if resp.DrawnAt == nil || r.DrawnAt.After(*resp.DrawnAt) {
			drawnAt := r.DrawnAt
			resp.DrawnAt = &drawnAt
		}
	}
	return resp
}
