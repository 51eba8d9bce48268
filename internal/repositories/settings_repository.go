package repositories

import (
	"errors"

	"waselni_backend/internal/config"
	"waselni_backend/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get возвращает singleton-настройки, создавая запись
	// со значениями по умолчанию при первом обращении
	Get(db *gorm.DB) (*models.PlatformSettings, error)
	Update(db *gorm.DB, fields map[string]interface{}) (*models.PlatformSettings, error)
}

type SettingsRepositoryImpl struct{}

func NewSettingsRepository() SettingsRepository {
	return &SettingsRepositoryImpl{}
}

func (r *SettingsRepositoryImpl) Get(db *gorm.DB) (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	err := db.First(&settings, "key = ?", models.SettingsKeyMain).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.PlatformSettings{
		Key:               models.SettingsKeyMain,
		CommissionEnabled: true,
		SenderRate:        0.01,
		CarrierRate:       0.01,
	}
	// Первая запись наследует секцию commission из конфигурации,
	// если конфигурация загружена
	if cfg := config.AppConfig; cfg != nil {
		settings.CommissionEnabled = cfg.Commission.Enabled
		settings.SenderRate = cfg.Commission.SenderRate
		settings.CarrierRate = cfg.Commission.CarrierRate
	}
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Update(db *gorm.DB, fields map[string]interface{}) (*models.PlatformSettings, error) {
	if _, err := r.Get(db); err != nil {
		return nil, err
	}

	err := db.Model(&models.PlatformSettings{}).
		Where("key = ?", models.SettingsKeyMain).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}

	return r.Get(db)
}
