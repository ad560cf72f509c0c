package models

import (
	"encoding/json"
	"time"

	usermodels "secret-santa-backend/internal/features/user/models"
)

// Assignment pairs a giver with the participant they present a gift to.
// @Description Giver to receiver pairing
type Assignment struct {
	GiverID    string `json:"giver_id" example:"u-alice"`
	ReceiverID string `json:"receiver_id" example:"u-bob"`
}

// AssignmentRecord is the persisted document for one giver inside an exchange.
// Older documents used giverId/receiverId instead of userId/targetUserId; both are accepted on read.
type AssignmentRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	GiftExchangeID string    `json:"giftExchangeId"`
	TargetUserID   string    `json:"targetUserId"`
	DrawnAt        time.Time `json:"drawnAt"`
}

func (r *AssignmentRecord) UnmarshalJSON(data []byte) error {
	type plain AssignmentRecord
	var aux struct {
		plain
		GiverID    string `json:"giverId"`
		ReceiverID string `json:"receiverId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = AssignmentRecord(aux.plain)
	if r.UserID == "" {
		r.UserID = aux.GiverID
	}
	if r.TargetUserID == "" {
		r.TargetUserID = aux.ReceiverID
	}
	if r.ID == "" {
		r.ID = r.UserID
	}
	return nil
}

// NewRecord builds the stored document for a in exchangeID.
func NewRecord(exchangeID string, a Assignment, drawnAt time.Time) AssignmentRecord {
	return AssignmentRecord{
		ID:             a.GiverID,
		UserID:         a.GiverID,
		GiftExchangeID: exchangeID,
		TargetUserID:   a.ReceiverID,
		DrawnAt:        drawnAt,
	}
}

func (r AssignmentRecord) Assignment() Assignment {
	return Assignment{GiverID: r.UserID, ReceiverID: r.TargetUserID}
}

// DrawResult describes a completed draw.
// @Description Result of a draw
type DrawResult struct {
	ExchangeID        string       `json:"exchange_id" example:"global-exchange"`
	ParticipantsCount int          `json:"participants_count" example:"3"`
	Assignments       []Assignment `json:"assignments"`
	DrawnAt           time.Time    `json:"drawn_at" example:"2025-12-01T18:00:00Z"`
}

// AssignmentsResponse lists the active assignment set of an exchange.
// @Description Active assignments of an exchange
type AssignmentsResponse struct {
	ExchangeID  string       `json:"exchange_id" example:"global-exchange"`
	Assignments []Assignment `json:"assignments"`
	DrawnAt     *time.Time   `json:"drawn_at,omitempty"`
}

// AssignmentResponse is what a giver sees: who they are buying for.
// @Description A single giver's assignment
type AssignmentResponse struct {
	ExchangeID string                   `json:"exchange_id" example:"global-exchange"`
	GiverID    string                   `json:"giver_id" example:"u-alice"`
	ReceiverID string                   `json:"receiver_id" example:"u-bob"`
	Receiver   *usermodels.UserResponse `json:"receiver,omitempty"`
}

// ResetResponse reports how many assignments a reset removed.
// @Description Reset result
type ResetResponse struct {
	ExchangeID string `json:"exchange_id" example:"global-exchange"`
	Removed    int    `json:"removed" example:"3"`
}

// ExchangeSummary is an exchange that currently has an assignment set.
// @Description Exchange with active assignments
type ExchangeSummary struct {
	ID               string `json:"id" example:"global-exchange"`
	AssignmentsCount int    `json:"assignments_count" example:"3"`
}
