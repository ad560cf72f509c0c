package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered exchange participant.
// @Description Registered participant
type User struct {
	ID                string    `json:"id" example:"u-alice"`
	Name              string    `json:"name" example:"Alice"`
	Email             string    `json:"email" example:"alice@example.com"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty" example:"https://example.com/alice.png"`
	Interests         string    `json:"interests,omitempty" example:"board games, tea"`
	Role              string    `json:"role" example:"user" enums:"user,admin"`
	CreatedAt         time.Time `json:"created_at" example:"2025-11-15T14:30:00Z"`
	UpdatedAt         time.Time `json:"updated_at" example:"2025-11-15T14:30:00Z"`
}

// UserResponse is the public view of a participant.
// @Description Public participant information
type UserResponse struct {
	ID                string    `json:"id" example:"u-alice"`
	Name              string    `json:"name" example:"Alice"`
	Email             string    `json:"email" example:"alice@example.com"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty" example:"https://example.com/alice.png"`
	Interests         string    `json:"interests,omitempty" example:"board games, tea"`
	Role              string    `json:"role" example:"user" enums:"user,admin"`
	CreatedAt         time.Time `json:"created_at" example:"2025-11-15T14:30:00Z"`
}

// UserCreate is the admin registration payload. ID is the participant's
// Telegram user id so they can later find themselves through /users/me.
// @Description Participant registration request
type UserCreate struct {
	ID                string `json:"id" binding:"required" example:"123456789"`
	Name              string `json:"name" binding:"required" example:"Alice"`
	Email             string `json:"email" binding:"required,email" example:"alice@example.com"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Interests         string `json:"interests,omitempty"`
	Role              string `json:"role,omitempty" enums:"user,admin"`
}

// SelfRegistration is what a Telegram user sends to join the exchange.
// Name defaults to the Telegram profile name.
// @Description Self-registration request
type SelfRegistration struct {
	Name              string `json:"name,omitempty" example:"Alice"`
	Email             string `json:"email" binding:"required,email" example:"alice@example.com"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Interests         string `json:"interests,omitempty" example:"board games, tea"`
}

// UserUpdate changes a participant's profile. Empty fields are left as they are.
// @Description Profile update request
type UserUpdate struct {
	Name              string `json:"name,omitempty" example:"Alice"`
	Email             string `json:"email,omitempty" binding:"omitempty,email" example:"alice@example.com"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	Interests         string `json:"interests,omitempty" example:"board games, tea"`
}
