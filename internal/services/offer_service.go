package services

import (
	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OfferService interface {
	CreateOffer(db *gorm.DB, actorID string, req *dto.CreateOfferRequest) (*models.TransportOffer, error)
	GetOffer(db *gorm.DB, id string) (*models.TransportOffer, error)
	ListOffers(db *gorm.DB, filter repositories.OfferFilter, page, pageSize int) (*dto.OfferListResponse, error)
	ListMyOffers(db *gorm.DB, actorID string, page, pageSize int) (*dto.OfferListResponse, error)
	UpdateOffer(db *gorm.DB, actorID, id string, req *dto.UpdateOfferRequest) (*models.TransportOffer, error)
	DeleteOffer(db *gorm.DB, actorID, id string) error
}

type offerService struct {
	offerRepo    repositories.OfferRepository
	contractRepo repositories.ContractRepository
	userRepo     repositories.UserRepository
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	contractRepo repositories.ContractRepository,
	userRepo repositories.UserRepository,
) OfferService {
	return &offerService{
		offerRepo:    offerRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
	}
}

func (s *offerService) CreateOffer(db *gorm.DB, actorID string, req *dto.CreateOfferRequest) (*models.TransportOffer, error) {
	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "Actor not found")
	}
	if !actor.Role.CanCarry() {
		return nil, apperrors.NewForbiddenError("offer", "Only carrier roles can create transport offers")
	}

	offer := &models.TransportOffer{
		CarrierID:          actorID,
		OriginCountry:      req.OriginCountry,
		OriginCity:         req.OriginCity,
		DestinationCountry: req.DestinationCountry,
		DestinationCity:    req.DestinationCity,
		DepartureDate:      req.DepartureDate,
		ArrivalDate:        req.ArrivalDate,
		CapacityKg:         req.CapacityKg,
		Mode:               models.ShippingMode(req.Mode),
		PricePerKg:         decimal.NewFromFloat(req.PricePerKg).Round(2),
		Conditions:         req.Conditions,
		Status:             models.OfferStatusActive,
	}

	if err := s.offerRepo.Create(db, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *offerService) GetOffer(db *gorm.DB, id string) (*models.TransportOffer, error) {
	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("offer", "Transport offer not found")
	}
	if offer.Hidden {
		return nil, apperrors.NewNotFoundError("offer", "Transport offer not found")
	}
	return offer, nil
}

func (s *offerService) ListOffers(db *gorm.DB, filter repositories.OfferFilter, page, pageSize int) (*dto.OfferListResponse, error) {
	offset := (page - 1) * pageSize
	offers, total, err := s.offerRepo.FindAll(db, filter, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.OfferListResponse{
		Offers:   offers,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}

func (s *offerService) ListMyOffers(db *gorm.DB, actorID string, page, pageSize int) (*dto.OfferListResponse, error) {
	offset := (page - 1) * pageSize
	offers, total, err := s.offerRepo.FindByCarrier(db, actorID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.OfferListResponse{
		Offers:   offers,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}

func (s *offerService) UpdateOffer(db *gorm.DB, actorID, id string, req *dto.UpdateOfferRequest) (*models.TransportOffer, error) {
	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("offer", "Transport offer not found")
	}
	if err := s.authorizeOwner(db, actorID, offer.CarrierID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.OriginCity != nil {
		fields["origin_city"] = *req.OriginCity
	}
	if req.DestinationCity != nil {
		fields["destination_city"] = *req.DestinationCity
	}
	if req.DepartureDate != nil {
		fields["departure_date"] = *req.DepartureDate
	}
	if req.ArrivalDate != nil {
		fields["arrival_date"] = *req.ArrivalDate
	}
	if req.CapacityKg != nil {
		fields["capacity_kg"] = *req.CapacityKg
	}
	if req.PricePerKg != nil {
		fields["price_per_kg"] = decimal.NewFromFloat(*req.PricePerKg).Round(2)
	}
	if req.Conditions != nil {
		fields["conditions"] = *req.Conditions
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	// Прибытие не может оказаться раньше отправления после частичного апдейта
	departure := offer.DepartureDate
	arrival := offer.ArrivalDate
	if req.DepartureDate != nil {
		departure = *req.DepartureDate
	}
	if req.ArrivalDate != nil {
		arrival = *req.ArrivalDate
	}
	if arrival.Before(departure) {
		return nil, apperrors.NewBadRequestError("arrival_date cannot be before departure_date")
	}

	if len(fields) > 0 {
		if err := s.offerRepo.UpdateFields(db, id, fields); err != nil {
			return nil, err
		}
	}

	return s.offerRepo.FindByID(db, id)
}

func (s *offerService) DeleteOffer(db *gorm.DB, actorID, id string) error {
	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return apperrors.NewNotFoundError("offer", "Transport offer not found")
	}
	if err := s.authorizeOwner(db, actorID, offer.CarrierID); err != nil {
		return err
	}

	// Предложение, привязанное к контракту, скрывается вместо удаления
	var count int64
	if err := db.Model(&models.Contract{}).Where("offer_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return s.offerRepo.SetHidden(db, id, true)
	}

	return s.offerRepo.Delete(db, id)
}

func (s *offerService) authorizeOwner(db *gorm.DB, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}
	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return apperrors.NewNotFoundError("user", "Actor not found")
	}
	if actor.Role != models.UserRoleAdmin {
		return apperrors.NewForbiddenError("offer", "Only the owner or an administrator can modify this offer")
	}
	return nil
}
