package dto

import (
	"time"

	"waselni_backend/internal/models"
)

type CreateOfferRequest struct {
	OriginCountry      string    `json:"origin_country" validate:"required,max=60"`
	OriginCity         string    `json:"origin_city" validate:"omitempty,max=60"`
	DestinationCountry string    `json:"destination_country" validate:"required,max=60"`
	DestinationCity    string    `json:"destination_city" validate:"omitempty,max=60"`
	DepartureDate      time.Time `json:"departure_date" validate:"required"`
	ArrivalDate        time.Time `json:"arrival_date" validate:"required,gtefield=DepartureDate"`
	CapacityKg         float64   `json:"capacity_kg" validate:"required,gt=0"`
	Mode               string    `json:"mode" validate:"required,shipping_mode"`
	PricePerKg         float64   `json:"price_per_kg" validate:"gte=0"`
	Conditions         string    `json:"conditions" validate:"omitempty,max=2000"`
}

type UpdateOfferRequest struct {
	OriginCity      *string    `json:"origin_city" validate:"omitempty,max=60"`
	DestinationCity *string    `json:"destination_city" validate:"omitempty,max=60"`
	DepartureDate   *time.Time `json:"departure_date"`
	ArrivalDate     *time.Time `json:"arrival_date"`
	CapacityKg      *float64   `json:"capacity_kg" validate:"omitempty,gt=0"`
	PricePerKg      *float64   `json:"price_per_kg" validate:"omitempty,gte=0"`
	Conditions      *string    `json:"conditions" validate:"omitempty,max=2000"`
	Status          *string    `json:"status" validate:"omitempty,oneof=active paused expired"`
}

type OfferListResponse struct {
	Offers []models.TransportOffer `json:"offers"`
	PageInfo
}
