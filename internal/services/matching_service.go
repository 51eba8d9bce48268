package services

import (
	"waselni_backend/internal/observability"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MatchingService - подбор совместимых заявок и предложений.
// Состояние не материализуется: совместимость вычисляется
// при каждом запросе по актуальным статусам.
type MatchingService interface {
	MatchOffersForRequest(db *gorm.DB, requestID string, page, pageSize int) (*dto.OfferListResponse, error)
	MatchRequestsForOffer(db *gorm.DB, offerID string, page, pageSize int) (*dto.RequestListResponse, error)
}

type matchingService struct {
	requestRepo repositories.RequestRepository
	offerRepo   repositories.OfferRepository
}

func NewMatchingService(
	requestRepo repositories.RequestRepository,
	offerRepo repositories.OfferRepository,
) MatchingService {
	return &matchingService{
		requestRepo: requestRepo,
		offerRepo:   offerRepo,
	}
}

func (s *matchingService) MatchOffersForRequest(db *gorm.DB, requestID string, page, pageSize int) (*dto.OfferListResponse, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}

	offset := (page - 1) * pageSize
	offers, total, err := s.offerRepo.FindMatchingForRequest(db, request, pageSize, offset)
	if err != nil {
		return nil, err
	}

	observability.MatchQueriesTotal.WithLabelValues("request").Inc()
	return &dto.OfferListResponse{
		Offers:   offers,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}

func (s *matchingService) MatchRequestsForOffer(db *gorm.DB, offerID string, page, pageSize int) (*dto.RequestListResponse, error) {
	offer, err := s.offerRepo.FindByID(db, offerID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("offer", "Transport offer not found")
	}

	offset := (page - 1) * pageSize
	requests, total, err := s.requestRepo.FindMatchingForOffer(db, offer, pageSize, offset)
	if err != nil {
		return nil, err
	}

	observability.MatchQueriesTotal.WithLabelValues("offer").Inc()
	return &dto.RequestListResponse{
		Requests: requests,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}
