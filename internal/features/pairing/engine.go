// Package pairing computes secret santa assignments.
//
// A draw shuffles the participants uniformly and pairs every participant with
// the next one in the shuffled order, wrapping around at the end. The result
// is a single cycle covering everyone, so nobody draws themselves and every
// participant gives and receives exactly once.
package pairing

import (
	"errors"
	"fmt"

	"secret-santa-backend/internal/features/exchange/models"
	"secret-santa-backend/internal/utils/random"
)

// MinParticipants is the smallest group a draw produces assignments for.
const MinParticipants = 2

var (
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrInvalidParticipant   = errors.New("invalid participant id")
	ErrRandomSource         = errors.New("random source failure")
	ErrInvalidAssignments   = errors.New("assignments violate draw invariants")
)

// Engine is safe for concurrent use when its Source is.
type Engine struct {
	src random.Source
}

// NewEngine returns an engine drawing from src, or from crypto/rand when src is nil.
func NewEngine(src random.Source) *Engine {
	if src == nil {
		src = random.CryptoSource{}
	}
	return &Engine{src: src}
}

// ComputeAssignments returns one assignment per participant.
//
// Participants must be unique non-empty ids: a repeated id fails with
// ErrDuplicateParticipant and is never deduplicated. Fewer than two
// participants yield an empty result and no error; callers decide whether
// that is worth reporting. The input slice is not modified.
func (e *Engine) ComputeAssignments(participants []string) ([]models.Assignment, error) {
	if err := ValidateParticipants(participants); err != nil {
		return nil, err
	}
	n := len(participants)
	if n < MinParticipants {
		return []models.Assignment{}, nil
	}

	order := make([]string, n)
	copy(order, participants)
	if err := random.Shuffle(order, e.src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	assignments := make([]models.Assignment, n)
	for i, giver := range order {
		assignments[i] = models.Assignment{GiverID: giver, ReceiverID: order[(i+1)%n]}
	}
	return assignments, nil
}

// ValidateParticipants rejects empty and repeated ids.
func ValidateParticipants(participants []string) error {
	seen := make(map[string]struct{}, len(participants))
	for i, id := range participants {
		if id == "" {
			return fmt.Errorf("%w: empty id at position %d", ErrInvalidParticipant, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateParticipant, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
