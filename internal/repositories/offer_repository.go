package repositories

import (
	"errors"

	"waselni_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOfferNotFound = errors.New("transport offer not found")

// OfferFilter - параметры выборки предложений
type OfferFilter struct {
	OriginCountry      string
	DestinationCountry string
	Mode               string
	Status             string
	MinCapacity        *float64
	IncludeHidden      bool
}

type OfferRepository interface {
	Create(db *gorm.DB, offer *models.TransportOffer) error
	FindByID(db *gorm.DB, id string) (*models.TransportOffer, error)
	FindByCarrier(db *gorm.DB, carrierID string, limit, offset int) ([]models.TransportOffer, int64, error)
	FindAll(db *gorm.DB, filter OfferFilter, limit, offset int) ([]models.TransportOffer, int64, error)
	Update(db *gorm.DB, offer *models.TransportOffer) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	SetHidden(db *gorm.DB, id string, hidden bool) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)

	// Matching: активные видимые предложения под заявку
	FindMatchingForRequest(db *gorm.DB, request *models.ShipmentRequest, limit, offset int) ([]models.TransportOffer, int64, error)
}

type OfferRepositoryImpl struct{}

func NewOfferRepository() OfferRepository {
	return &OfferRepositoryImpl{}
}

func (r *OfferRepositoryImpl) Create(db *gorm.DB, offer *models.TransportOffer) error {
	return db.Create(offer).Error
}

func (r *OfferRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.TransportOffer, error) {
	var offer models.TransportOffer
	err := db.Preload("Carrier").First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) FindByCarrier(db *gorm.DB, carrierID string, limit, offset int) ([]models.TransportOffer, int64, error) {
	var offers []models.TransportOffer
	var total int64

	q := db.Model(&models.TransportOffer{}).Where("carrier_id = ?", carrierID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&offers).Error
	return offers, total, err
}

func (r *OfferRepositoryImpl) FindAll(db *gorm.DB, filter OfferFilter, limit, offset int) ([]models.TransportOffer, int64, error) {
	var offers []models.TransportOffer
	var total int64

	q := db.Model(&models.TransportOffer{})
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
	if filter.MinCapacity != nil {
		q = q.Where("capacity_kg >= ?", *filter.MinCapacity)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&offers).Error
	return offers, total, err
}

func (r *OfferRepositoryImpl) Update(db *gorm.DB, offer *models.TransportOffer) error {
	return db.Save(offer).Error
}

func (r *OfferRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.TransportOffer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepositoryImpl) SetHidden(db *gorm.DB, id string, hidden bool) error {
	return r.UpdateFields(db, id, map[string]interface{}{"hidden": hidden})
}

func (r *OfferRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.TransportOffer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.TransportOffer{}).Count(&count).Error
	return count, err
}

func (r *OfferRepositoryImpl) FindMatchingForRequest(db *gorm.DB, request *models.ShipmentRequest, limit, offset int) ([]models.TransportOffer, int64, error) {
	var offers []models.TransportOffer
	var total int64

	q := db.Model(&models.TransportOffer{}).
		Where("status = ?", models.OfferStatusActive).
		Where("hidden = ?", false).
		Where("origin_country = ?", request.OriginCountry).
		Where("destination_country = ?", request.DestinationCountry).
		Where("mode = ?", request.Mode).
		Where("capacity_kg >= ?", request.WeightKg)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Carrier").Order("created_at DESC").Limit(limit).Offset(offset).Find(&offers).Error
	return offers, total, err
}
