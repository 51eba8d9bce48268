package models

import "time"

// SettingsKeyMain - ключ единственной записи настроек платформы
const SettingsKeyMain = "main"

// PlatformSettings - singleton-конфигурация комиссии.
// Читается при создании платежа и снапшотится в Payment:
// последующие изменения ставок не затрагивают существующие платежи.
type PlatformSettings struct {
	Key               string    `gorm:"primaryKey" json:"key"`
	CommissionEnabled bool      `gorm:"not null;default:true" json:"commission_enabled"`
	SenderRate        float64   `gorm:"not null;default:0.01" json:"sender_rate"`
	CarrierRate       float64   `gorm:"not null;default:0.01" json:"carrier_rate"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
