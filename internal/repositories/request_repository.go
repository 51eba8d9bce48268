package repositories

import (
	"errors"

	"waselni_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("shipment request not found")

// RequestFilter - параметры выборки заявок
type RequestFilter struct {
	OriginCountry      string
	DestinationCountry string
	Mode               string
	Status             string
	MinWeight          *float64
	MaxWeight          *float64
	IncludeHidden      bool
}

type RequestRepository interface {
	Create(db *gorm.DB, request *models.ShipmentRequest) error
	FindByID(db *gorm.DB, id string) (*models.ShipmentRequest, error)
	FindBySender(db *gorm.DB, senderID string, limit, offset int) ([]models.ShipmentRequest, int64, error)
	FindAll(db *gorm.DB, filter RequestFilter, limit, offset int) ([]models.ShipmentRequest, int64, error)
	Update(db *gorm.DB, request *models.ShipmentRequest) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	UpdateStatus(db *gorm.DB, id string, status models.RequestStatus) error
	SetHidden(db *gorm.DB, id string, hidden bool) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)

	// Встречная сторона matching: открытые видимые заявки под предложение
	FindMatchingForOffer(db *gorm.DB, offer *models.TransportOffer, limit, offset int) ([]models.ShipmentRequest, int64, error)
}

type RequestRepositoryImpl struct{}

func NewRequestRepository() RequestRepository {
	return &RequestRepositoryImpl{}
}

func (r *RequestRepositoryImpl) Create(db *gorm.DB, request *models.ShipmentRequest) error {
	return db.Create(request).Error
}

func (r *RequestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ShipmentRequest, error) {
	var request models.ShipmentRequest
	err := db.Preload("Sender").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepositoryImpl) FindBySender(db *gorm.DB, senderID string, limit, offset int) ([]models.ShipmentRequest, int64, error) {
	var requests []models.ShipmentRequest
	var total int64

	q := db.Model(&models.ShipmentRequest{}).Where("sender_id = ?", senderID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *RequestRepositoryImpl) FindAll(db *gorm.DB, filter RequestFilter, limit, offset int) ([]models.ShipmentRequest, int64, error) {
	var requests []models.ShipmentRequest
	var total int64

	q := db.Model(&models.ShipmentRequest{})
	if !filter.IncludeHidden {
		q = q.Where("hidden = ?", false)
	}
	if filter.OriginCountry != "" {
		q = q.Where("origin_country = ?", filter.OriginCountry)
	}
	if filter.DestinationCountry != "" {
		q = q.Where("destination_country = ?", filter.DestinationCountry)
	}
	if filter.Mode != "" {
		q = q.Where("mode = ?", filter.Mode)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinWeight != nil {
		q = q.Where("weight_kg >= ?", *filter.MinWeight)
	}
	if filter.MaxWeight != nil {
		q = q.Where("weight_kg <= ?", *filter.MaxWeight)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *RequestRepositoryImpl) Update(db *gorm.DB, request *models.ShipmentRequest) error {
	return db.Save(request).Error
}

func (r *RequestRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.ShipmentRequest{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.RequestStatus) error {
	return r.UpdateFields(db, id, map[string]interface{}{"status": status})
}

func (r *RequestRepositoryImpl) SetHidden(db *gorm.DB, id string, hidden bool) error {
	return r.UpdateFields(db, id, map[string]interface{}{"hidden": hidden})
}

func (r *RequestRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.ShipmentRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.ShipmentRequest{}).Count(&count).Error
	return count, err
}

func (r *RequestRepositoryImpl) FindMatchingForOffer(db *gorm.DB, offer *models.TransportOffer, limit, offset int) ([]models.ShipmentRequest, int64, error) {
	var requests []models.ShipmentRequest
	var total int64

	q := db.Model(&models.ShipmentRequest{}).
		Where("status = ?", models.RequestStatusOpen).
		Where("hidden = ?", false).
		Where("origin_country = ?", offer.OriginCountry).
		Where("destination_country = ?", offer.DestinationCountry).
		Where("mode = ?", offer.Mode).
		Where("weight_kg <= ?", offer.CapacityKg)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Sender").Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}
