package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportOffer - предложение перевозчика со свободной грузоподъемностью
type TransportOffer struct {
	BaseModel
	CarrierID string `gorm:"type:uuid;not null;index" json:"carrier_id"`

	OriginCountry      string `gorm:"not null;index" json:"origin_country"`
	OriginCity         string `json:"origin_city"`
	DestinationCountry string `gorm:"not null;index" json:"destination_country"`
	DestinationCity    string `json:"destination_city"`

	DepartureDate time.Time `gorm:"not null" json:"departure_date"`
	ArrivalDate   time.Time `gorm:"not null" json:"arrival_date"`

	CapacityKg float64         `gorm:"not null" json:"capacity_kg"`
	Mode       ShippingMode    `gorm:"type:varchar(20);not null" json:"mode"`
	PricePerKg decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_per_kg"`
	Conditions string          `json:"conditions"`

	Status OfferStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Hidden bool        `gorm:"default:false" json:"hidden"`

	Carrier *User `gorm:"foreignKey:CarrierID" json:"carrier,omitempty"`
}
