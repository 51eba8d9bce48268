package dto

type UpdateSettingsRequest struct {
	CommissionEnabled *bool    `json:"commission_enabled"`
	SenderRate        *float64 `json:"sender_rate" validate:"omitempty,gte=0,lte=1"`
	CarrierRate       *float64 `json:"carrier_rate" validate:"omitempty,gte=0,lte=1"`
}

// PlatformStats - счетчики сущностей для админ-панели
type PlatformStats struct {
	Users     int64 `json:"users"`
	Requests  int64 `json:"requests"`
	Offers    int64 `json:"offers"`
	Contracts int64 `json:"contracts"`
	Payments  int64 `json:"payments"`
	Reviews   int64 `json:"reviews"`
}
