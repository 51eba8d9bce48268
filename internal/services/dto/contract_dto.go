package dto

import "waselni_backend/internal/models"

type CreateContractRequest struct {
	RequestID string  `json:"request_id" validate:"required,uuid4"`
	OfferID   *string `json:"offer_id" validate:"omitempty,uuid4"`
	// Контрагент-перевозчик; обязателен, когда контракт создает отправитель
	CarrierID string  `json:"carrier_id" validate:"omitempty,uuid4"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

type ContractListResponse struct {
	Contracts []models.Contract `json:"contracts"`
	PageInfo
}

// ContractResponse - контракт с разобранной историей
type ContractResponse struct {
	Contract *models.Contract       `json:"contract"`
	Timeline []models.TimelineEntry `json:"timeline"`
	Reviews  []models.Review        `json:"reviews,omitempty"`
}
