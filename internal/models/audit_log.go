package models

import "gorm.io/datatypes"

// AuditLog - запись о действии администратора
type AuditLog struct {
	BaseModel
	AdminID    string         `gorm:"type:uuid;not null;index" json:"admin_id"`
	Action     string         `gorm:"not null" json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Details    datatypes.JSON `json:"details,omitempty"`
}
