package dto

import "waselni_backend/internal/models"

type CreatePaymentRequest struct {
	ContractID string `json:"contract_id" validate:"required,uuid4"`
	ReturnURL  string `json:"return_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

type ExecutePaymentRequest struct {
	PayerID string `json:"payer_id" validate:"required"`
}

// PaymentResponse - платеж с URL подтверждения провайдера
type PaymentResponse struct {
	Payment     *models.Payment `json:"payment"`
	ApprovalURL string          `json:"approval_url,omitempty"`
}

type PaymentListResponse struct {
	Payments []models.Payment `json:"payments"`
	PageInfo
	TotalCommission string `json:"total_commission,omitempty"`
}
