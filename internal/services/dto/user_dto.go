package dto

import "waselni_backend/internal/models"

type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Country   *string `json:"country" validate:"omitempty,max=60"`
	City      *string `json:"city" validate:"omitempty,max=60"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// UserProfileResponse - публичный профиль с агрегированным рейтингом
type UserProfileResponse struct {
	ID            string          `json:"id"`
	Role          models.UserRole `json:"role"`
	Name          string          `json:"name"`
	Country       string          `json:"country"`
	City          string          `json:"city"`
	AvatarURL     string          `json:"avatar_url,omitempty"`
	AverageRating float64         `json:"average_rating"`
	RatingCount   int64           `json:"rating_count"`
}

type UserListResponse struct {
	Users []models.User `json:"users"`
	PageInfo
}
