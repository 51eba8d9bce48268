package dto

import "waselni_backend/internal/models"

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}

type ReviewListResponse struct {
	Reviews []models.Review `json:"reviews"`
	PageInfo
}
