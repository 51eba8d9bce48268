package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment - расчет по контракту. Суммы и комиссии фиксируются
// в момент создания и больше не пересчитываются.
type Payment struct {
	BaseModel
	ContractID        string `gorm:"type:uuid;not null;index" json:"contract_id"`
	ProviderPaymentID string `gorm:"index" json:"provider_payment_id"`

	SenderID  string `gorm:"type:uuid;not null;index" json:"sender_id"`
	CarrierID string `gorm:"type:uuid;not null" json:"carrier_id"`

	BasePrice         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	SenderCommission  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sender_commission"`
	CarrierCommission decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"carrier_commission"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CarrierPayout     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"carrier_payout"`
	CommissionEnabled bool            `gorm:"not null" json:"commission_enabled"`

	Status        PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`

	Contract *Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
}
