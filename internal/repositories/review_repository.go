package repositories

import (
	"errors"

	"waselni_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this contract")
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByContract(db *gorm.DB, contractID string) ([]models.Review, error)
	FindByContractAndReviewer(db *gorm.DB, contractID, reviewerID string) (*models.Review, error)
	FindByReviewee(db *gorm.DB, revieweeID string, limit, offset int) ([]models.Review, int64, error)
	Count(db *gorm.DB) (int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// Create вставляет отзыв, уникальность пары (контракт, автор)
// гарантирует составной индекс.
func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Reviewer").Preload("Reviewee").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByContract(db *gorm.DB, contractID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").
		Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindByContractAndReviewer(db *gorm.DB, contractID, reviewerID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("contract_id = ? AND reviewer_id = ?", contractID, reviewerID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByReviewee(db *gorm.DB, revieweeID string, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	q := db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Reviewer").Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Count(&count).Error
	return count, err
}
