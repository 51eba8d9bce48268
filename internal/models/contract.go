package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TimelineEntry - запись в истории контракта.
// История только дописывается, существующие записи не изменяются.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	By        string    `json:"by,omitempty"` // actor id, заполняется при отмене
}

// Contract - договоренность между одним отправителем и одним перевозчиком
// по одной заявке
type Contract struct {
	BaseModel
	RequestID string  `gorm:"type:uuid;not null;index" json:"request_id"`
	OfferID   *string `gorm:"type:uuid" json:"offer_id,omitempty"`

	SenderID  string `gorm:"type:uuid;not null;index" json:"sender_id"`
	CarrierID string `gorm:"type:uuid;not null;index" json:"carrier_id"`

	Price decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	Status   ContractStatus `gorm:"type:varchar(20);default:'proposed';index" json:"status"`
	Timeline datatypes.JSON `json:"timeline"`

	// Заполняются после успешного платежа
	PaymentStatus string  `json:"payment_status,omitempty"`
	PaymentID     *string `gorm:"type:uuid" json:"payment_id,omitempty"`

	Request *ShipmentRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Offer   *TransportOffer  `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
	Sender  *User            `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Carrier *User            `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
}

// DecodeTimeline разбирает JSON-историю контракта
func (c *Contract) DecodeTimeline() ([]TimelineEntry, error) {
	if len(c.Timeline) == 0 {
		return nil, nil
	}
	var entries []TimelineEntry
	if err := json.Unmarshal(c.Timeline, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AppendTimeline добавляет запись в конец истории
func (c *Contract) AppendTimeline(entry TimelineEntry) error {
	entries, err := c.DecodeTimeline()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	c.Timeline = raw
	return nil
}

// IsParty сообщает, является ли пользователь стороной контракта
func (c *Contract) IsParty(userID string) bool {
	return c.SenderID == userID || c.CarrierID == userID
}
