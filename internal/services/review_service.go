package services

import (
	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	SubmitReview(db *gorm.DB, actorID, contractID string, req *dto.CreateReviewRequest) (*models.Review, error)
	GetContractReviews(db *gorm.DB, contractID string) ([]models.Review, error)
	GetUserReviews(db *gorm.DB, userID string, page, pageSize int) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviewRepo   repositories.ReviewRepository
	contractRepo repositories.ContractRepository
	userRepo     repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	contractRepo repositories.ContractRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
	}
}

func (s *reviewService) SubmitReview(db *gorm.DB, actorID, contractID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	contract, err := s.contractRepo.FindByID(db, contractID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("contract", "Contract not found")
	}

	if !contract.IsParty(actorID) {
		return nil, apperrors.NewForbiddenError("review", "Only contract parties can leave a review")
	}
	if contract.Status != models.ContractStatusDelivered {
		return nil, apperrors.NewInvalidStatusError("review", "Reviews are allowed only after delivery")
	}

	revieweeID := contract.SenderID
	if actorID == contract.SenderID {
		revieweeID = contract.CarrierID
	}

	review := &models.Review{
		ContractID: contractID,
		ReviewerID: actorID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	// Создание отзыва и инкремент рейтинга получателя атомарны
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}
		return s.userRepo.IncrementRating(tx, revieweeID, req.Rating)
	})
	if err != nil {
		if err == repositories.ErrReviewAlreadyExists {
			return nil, apperrors.NewConflictError("review", "Review already submitted for this contract")
		}
		return nil, err
	}

	return review, nil
}

func (s *reviewService) GetContractReviews(db *gorm.DB, contractID string) ([]models.Review, error) {
	if _, err := s.contractRepo.FindByID(db, contractID); err != nil {
		return nil, apperrors.NewNotFoundError("contract", "Contract not found")
	}
	return s.reviewRepo.FindByContract(db, contractID)
}

func (s *reviewService) GetUserReviews(db *gorm.DB, userID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	offset := (page - 1) * pageSize
	reviews, total, err := s.reviewRepo.FindByReviewee(db, userID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews:  reviews,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}
