package repositories

import (
	"waselni_backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(db *gorm.DB, entry *models.AuditLog) error
	FindAll(db *gorm.DB, limit, offset int) ([]models.AuditLog, int64, error)
}

type AuditRepositoryImpl struct{}

func NewAuditRepository() AuditRepository {
	return &AuditRepositoryImpl{}
}

func (r *AuditRepositoryImpl) Create(db *gorm.DB, entry *models.AuditLog) error {
	return db.Create(entry).Error
}

func (r *AuditRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.AuditLog, int64, error) {
	var entries []models.AuditLog
	var total int64

	if err := db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}
