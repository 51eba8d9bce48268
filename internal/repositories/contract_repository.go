package repositories

import (
	"errors"

	"waselni_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrStatusChanged    = errors.New("contract status changed concurrently")
)

type ContractRepository interface {
	Create(db *gorm.DB, contract *models.Contract) error
	FindByID(db *gorm.DB, id string) (*models.Contract, error)
	FindByParty(db *gorm.DB, userID string, status string, limit, offset int) ([]models.Contract, int64, error)
	FindActiveByRequest(db *gorm.DB, requestID string) (*models.Contract, error)

	// Compare-and-set: переход выполняется только если статус не изменился
	// с момента чтения. RowsAffected = 0 означает проигранную гонку.
	TransitionStatus(db *gorm.DB, contract *models.Contract, from, to models.ContractStatus) error

	MarkPaid(db *gorm.DB, contractID, paymentID string) error
	Count(db *gorm.DB) (int64, error)
}

type ContractRepositoryImpl struct{}

func NewContractRepository() ContractRepository {
	return &ContractRepositoryImpl{}
}

func (r *ContractRepositoryImpl) Create(db *gorm.DB, contract *models.Contract) error {
	return db.Create(contract).Error
}

func (r *ContractRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Contract, error) {
	var contract models.Contract
	err := db.Preload("Request").Preload("Offer").Preload("Sender").Preload("Carrier").
		First(&contract, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindByParty(db *gorm.DB, userID string, status string, limit, offset int) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	q := db.Model(&models.Contract{}).Where("sender_id = ? OR carrier_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Request").Order("created_at DESC").Limit(limit).Offset(offset).Find(&contracts).Error
	return contracts, total, err
}

func (r *ContractRepositoryImpl) FindActiveByRequest(db *gorm.DB, requestID string) (*models.Contract, error) {
	var contract models.Contract
	err := db.Where("request_id = ? AND status <> ?", requestID, models.ContractStatusCancelled).
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) TransitionStatus(db *gorm.DB, contract *models.Contract, from, to models.ContractStatus) error {
	result := db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", contract.ID, from).
		Updates(map[string]interface{}{
			"status":   to,
			"timeline": contract.Timeline,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	contract.Status = to
	return nil
}

func (r *ContractRepositoryImpl) MarkPaid(db *gorm.DB, contractID, paymentID string) error {
	result := db.Model(&models.Contract{}).Where("id = ?", contractID).Updates(map[string]interface{}{
		"payment_status": "paid",
		"payment_id":     paymentID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Contract{}).Count(&count).Error
	return count, err
}
