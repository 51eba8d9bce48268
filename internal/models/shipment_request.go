package models

import (
	"time"

	"gorm.io/datatypes"
)

// ShipmentRequest - заявка отправителя на перевозку посылки
type ShipmentRequest struct {
	BaseModel
	SenderID string `gorm:"type:uuid;not null;index" json:"sender_id"`

	OriginCountry      string `gorm:"not null;index" json:"origin_country"`
	OriginCity         string `json:"origin_city"`
	DestinationCountry string `gorm:"not null;index" json:"destination_country"`
	DestinationCity    string `json:"destination_city"`

	WeightKg float64  `gorm:"not null" json:"weight_kg"`
	LengthCm *float64 `json:"length_cm,omitempty"`
	WidthCm  *float64 `json:"width_cm,omitempty"`
	HeightCm *float64 `json:"height_cm,omitempty"`

	Category    string       `json:"category"`
	Mode        ShippingMode `gorm:"type:varchar(20);not null" json:"mode"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Description string       `json:"description"`

	// Упорядоченный список ссылок на фотографии (хранилище внешнее)
	Photos datatypes.JSON `json:"photos"`

	Status RequestStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`
	Hidden bool          `gorm:"default:false" json:"hidden"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
