package models

// UsersResponse is the participant list.
type UsersResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total" example:"42"`
}
