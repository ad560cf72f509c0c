package pairing

import (
	"fmt"

	"secret-santa-backend/internal/features/exchange/models"
)

// Verify checks that assignments form a derangement of participants: every
// participant gives once, receives once, and never to themselves.
func Verify(participants []string, assignments []models.Assignment) error {
	if len(participants) < MinParticipants {
		if len(assignments) != 0 {
			return fmt.Errorf("%w: %d assignments for %d participants", ErrInvalidAssignments, len(assignments), len(participants))
		}
		return nil
	}
	if len(assignments) != len(participants) {
		return fmt.Errorf("%w: %d assignments for %d participants", ErrInvalidAssignments, len(assignments), len(participants))
	}

	members := make(map[string]struct{}, len(participants))
	for _, id := range participants {
		members[id] = struct{}{}
	}
	gives := make(map[string]struct{}, len(assignments))
	receives := make(map[string]struct{}, len(assignments))

	for _, a := range assignments {
		if a.GiverID == a.ReceiverID {
			return fmt.Errorf("%w: %q assigned to themselves", ErrInvalidAssignments, a.GiverID)
		}
		if _, ok := members[a.GiverID]; !ok {
			return fmt.Errorf("%w: unknown giver %q", ErrInvalidAssignments, a.GiverID)
		}
		if _, ok := members[a.ReceiverID]; !ok {
			return fmt.Errorf("%w: unknown receiver %q", ErrInvalidAssignments, a.ReceiverID)
		}
		if _, dup := gives[a.GiverID]; dup {
			return fmt.Errorf("%w: %q gives more than once", ErrInvalidAssignments, a.GiverID)
		}
		if _, dup := receives[a.ReceiverID]; dup {
			return fmt.Errorf("%w: %q receives more than once", ErrInvalidAssignments, a.ReceiverID)
		}
		gives[a.GiverID] = struct{}{}
		receives[a.ReceiverID] = struct{}{}
	}
	return nil
}

// CycleLength follows giver->receiver links from start and returns the number
// of steps until start is reached again, or 0 if the chain breaks.
func CycleLength(assignments []models.Assignment, start string) int {
	next := make(map[string]string, len(assignments))
	for _, a := range assignments {
		next[a.GiverID] = a.ReceiverID
	}
	cur, steps := start, 0
	for {
		to, ok := next[cur]
		if !ok {
			return 0
		}
		steps++
		if to == start {
			return steps
		}
		if steps > len(assignments) {
			return 0
		}
		cur = to
	}
}
