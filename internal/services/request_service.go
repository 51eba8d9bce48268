package services

import (
	"encoding/json"

	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RequestService interface {
	CreateRequest(db *gorm.DB, actorID string, req *dto.CreateRequestRequest) (*models.ShipmentRequest, error)
	GetRequest(db *gorm.DB, id string) (*models.ShipmentRequest, error)
	ListRequests(db *gorm.DB, filter repositories.RequestFilter, page, pageSize int) (*dto.RequestListResponse, error)
	ListMyRequests(db *gorm.DB, actorID string, page, pageSize int) (*dto.RequestListResponse, error)
	UpdateRequest(db *gorm.DB, actorID, id string, req *dto.UpdateRequestRequest) (*models.ShipmentRequest, error)
	DeleteRequest(db *gorm.DB, actorID, id string) error
	AddPhoto(db *gorm.DB, actorID, id, photoURL string) (*models.ShipmentRequest, error)
}

type requestService struct {
	requestRepo  repositories.RequestRepository
	contractRepo repositories.ContractRepository
	userRepo     repositories.UserRepository
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	contractRepo repositories.ContractRepository,
	userRepo repositories.UserRepository,
) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
	}
}

func (s *requestService) CreateRequest(db *gorm.DB, actorID string, req *dto.CreateRequestRequest) (*models.ShipmentRequest, error) {
	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "Actor not found")
	}
	if !actor.Role.CanSend() {
		return nil, apperrors.NewForbiddenError("request", "Only sender roles can create shipment requests")
	}

	emptyPhotos, _ := json.Marshal([]string{})
	request := &models.ShipmentRequest{
		SenderID:           actorID,
		OriginCountry:      req.OriginCountry,
		OriginCity:         req.OriginCity,
		DestinationCountry: req.DestinationCountry,
		DestinationCity:    req.DestinationCity,
		WeightKg:           req.WeightKg,
		LengthCm:           req.LengthCm,
		WidthCm:            req.WidthCm,
		HeightCm:           req.HeightCm,
		Category:           req.Category,
		Mode:               models.ShippingMode(req.Mode),
		Deadline:           req.Deadline,
		Description:        req.Description,
		Photos:             emptyPhotos,
		Status:             models.RequestStatusOpen,
	}

	if err := s.requestRepo.Create(db, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) GetRequest(db *gorm.DB, id string) (*models.ShipmentRequest, error) {
	request, err := s.requestRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}
	if request.Hidden {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}
	return request, nil
}

func (s *requestService) ListRequests(db *gorm.DB, filter repositories.RequestFilter, page, pageSize int) (*dto.RequestListResponse, error) {
	offset := (page - 1) * pageSize
	requests, total, err := s.requestRepo.FindAll(db, filter, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.RequestListResponse{
		Requests: requests,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}

func (s *requestService) ListMyRequests(db *gorm.DB, actorID string, page, pageSize int) (*dto.RequestListResponse, error) {
	offset := (page - 1) * pageSize
	requests, total, err := s.requestRepo.FindBySender(db, actorID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.RequestListResponse{
		Requests: requests,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}

func (s *requestService) UpdateRequest(db *gorm.DB, actorID, id string, req *dto.UpdateRequestRequest) (*models.ShipmentRequest, error) {
	request, err := s.requestRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}
	if err := s.authorizeOwner(db, actorID, request.SenderID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.OriginCity != nil {
		fields["origin_city"] = *req.OriginCity
	}
	if req.DestinationCity != nil {
		fields["destination_city"] = *req.DestinationCity
	}
	if req.WeightKg != nil {
		fields["weight_kg"] = *req.WeightKg
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Deadline != nil {
		fields["deadline"] = *req.Deadline
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.requestRepo.UpdateFields(db, id, fields); err != nil {
			return nil, err
		}
	}

	return s.requestRepo.FindByID(db, id)
}

func (s *requestService) DeleteRequest(db *gorm.DB, actorID, id string) error {
	request, err := s.requestRepo.FindByID(db, id)
	if err != nil {
		return apperrors.NewNotFoundError("request", "Shipment request not found")
	}
	if err := s.authorizeOwner(db, actorID, request.SenderID); err != nil {
		return err
	}

	// Заявка, на которую ссылается контракт, не удаляется физически,
	// а скрывается
	if _, err := s.contractRepo.FindActiveByRequest(db, id); err == nil {
		return s.requestRepo.SetHidden(db, id, true)
	} else if err != repositories.ErrContractNotFound {
		return err
	}

	return s.requestRepo.Delete(db, id)
}

func (s *requestService) AddPhoto(db *gorm.DB, actorID, id, photoURL string) (*models.ShipmentRequest, error) {
	request, err := s.requestRepo.FindByID(db, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}
	if err := s.authorizeOwner(db, actorID, request.SenderID); err != nil {
		return nil, err
	}

	var photos []string
	if len(request.Photos) > 0 {
		if err := json.Unmarshal(request.Photos, &photos); err != nil {
			return nil, err
		}
	}
	photos = append(photos, photoURL)
	raw, err := json.Marshal(photos)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.UpdateFields(db, id, map[string]interface{}{"photos": raw}); err != nil {
		return nil, err
	}
	return s.requestRepo.FindByID(db, id)
}

func (s *requestService) authorizeOwner(db *gorm.DB, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}
	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return apperrors.NewNotFoundError("user", "Actor not found")
	}
	if actor.Role != models.UserRoleAdmin {
		return apperrors.NewForbiddenError("request", "Only the owner or an administrator can modify this request")
	}
	return nil
}
