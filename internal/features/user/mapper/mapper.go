package mapper

import "secret-santa-backend/internal/features/user/models"

// ToUserResponse maps User model to UserResponse DTO
func ToUserResponse(user *models.User) *models.UserResponse {
	return &models.UserResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		ProfilePictureURL: user.ProfilePictureURL,
		Interests:         user.Interests,
		Role:              user.Role,
		CreatedAt:         user.CreatedAt,
	}
}

// ToUsersResponse maps a list of users, keeping order.
func ToUsersResponse(users []*models.User) *models.UsersResponse {
	items := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *ToUserResponse(u))
	}
	return &models.UsersResponse{Items: items, Total: len(items)}
}
