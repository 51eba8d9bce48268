package dto

import (
	"time"

	"waselni_backend/internal/models"
)

type CreateRequestRequest struct {
	OriginCountry      string     `json:"origin_country" validate:"required,max=60"`
	OriginCity         string     `json:"origin_city" validate:"omitempty,max=60"`
	DestinationCountry string     `json:"destination_country" validate:"required,max=60"`
	DestinationCity    string     `json:"destination_city" validate:"omitempty,max=60"`
	WeightKg           float64    `json:"weight_kg" validate:"required,gt=0"`
	LengthCm           *float64   `json:"length_cm" validate:"omitempty,gt=0"`
	WidthCm            *float64   `json:"width_cm" validate:"omitempty,gt=0"`
	HeightCm           *float64   `json:"height_cm" validate:"omitempty,gt=0"`
	Category           string     `json:"category" validate:"omitempty,max=60"`
	Mode               string     `json:"mode" validate:"required,shipping_mode"`
	Deadline           *time.Time `json:"deadline"`
	Description        string     `json:"description" validate:"omitempty,max=2000"`
}

type UpdateRequestRequest struct {
	OriginCity      *string    `json:"origin_city" validate:"omitempty,max=60"`
	DestinationCity *string    `json:"destination_city" validate:"omitempty,max=60"`
	WeightKg        *float64   `json:"weight_kg" validate:"omitempty,gt=0"`
	Category        *string    `json:"category" validate:"omitempty,max=60"`
	Deadline        *time.Time `json:"deadline"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	Status          *string    `json:"status" validate:"omitempty,oneof=open in_negotiation accepted in_transit delivered cancelled"`
}

type AddPhotoRequest struct {
	PhotoURL string `json:"photo_url" validate:"required,url"`
}

type RequestListResponse struct {
	Requests []models.ShipmentRequest `json:"requests"`
	PageInfo
}
