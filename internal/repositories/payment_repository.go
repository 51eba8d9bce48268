package repositories

import (
	"errors"

	"waselni_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentChanged  = errors.New("payment status changed concurrently")
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByID(db *gorm.DB, id string) (*models.Payment, error)
	FindByContract(db *gorm.DB, contractID string) ([]models.Payment, error)
	FindNonFailedByContract(db *gorm.DB, contractID string) (*models.Payment, error)

	// Compare-and-set на статусе pending
	Complete(db *gorm.DB, payment *models.Payment) error
	Fail(db *gorm.DB, payment *models.Payment, reason string) error

	FindAll(db *gorm.DB, limit, offset int) ([]models.Payment, int64, error)
	SumCompletedCommissions(db *gorm.DB) (decimal.Decimal, error)
	Count(db *gorm.DB) (int64, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByContract(db *gorm.DB, contractID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := db.Where("contract_id = ?", contractID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) FindNonFailedByContract(db *gorm.DB, contractID string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Where("contract_id = ? AND status <> ?", contractID, models.PaymentStatusFailed).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) Complete(db *gorm.DB, payment *models.Payment) error {
	result := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       models.PaymentStatusCompleted,
			"completed_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentChanged
	}
	payment.Status = models.PaymentStatusCompleted
	return nil
}

func (r *PaymentRepositoryImpl) Fail(db *gorm.DB, payment *models.Payment, reason string) error {
	result := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentChanged
	}
	payment.Status = models.PaymentStatusFailed
	payment.FailureReason = reason
	return nil
}

func (r *PaymentRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	if err := db.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *PaymentRepositoryImpl) SumCompletedCommissions(db *gorm.DB) (decimal.Decimal, error) {
	var raw *string
	err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Select("SUM(sender_commission + carrier_commission)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

func (r *PaymentRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Payment{}).Count(&count).Error
	return count, err
}
