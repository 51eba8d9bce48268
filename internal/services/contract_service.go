package services

import (
	"time"

	"waselni_backend/internal/models"
	"waselni_backend/internal/observability"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContractService interface {
	CreateContract(db *gorm.DB, actorID string, req *dto.CreateContractRequest) (*models.Contract, error)
	Transition(db *gorm.DB, actorID, contractID string, action models.ContractAction) (*models.Contract, error)
	GetContract(db *gorm.DB, actorID, contractID string) (*dto.ContractResponse, error)
	ListMyContracts(db *gorm.DB, actorID, status string, page, pageSize int) (*dto.ContractListResponse, error)
}

type contractService struct {
	contractRepo repositories.ContractRepository
	requestRepo  repositories.RequestRepository
	offerRepo    repositories.OfferRepository
	userRepo     repositories.UserRepository
	reviewRepo   repositories.ReviewRepository
}

func NewContractService(
	contractRepo repositories.ContractRepository,
	requestRepo repositories.RequestRepository,
	offerRepo repositories.OfferRepository,
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		requestRepo:  requestRepo,
		offerRepo:    offerRepo,
		userRepo:     userRepo,
		reviewRepo:   reviewRepo,
	}
}

// resolveParties - чистая функция распределения ролей в контракте.
// Вычисляется до любой записи в БД; результат хранится на контракте
// явными полями sender_id/carrier_id и больше не перевычисляется.
func resolveParties(actorID string, actorRole models.UserRole, requestOwnerID, counterpartID string) (senderID, carrierID string, err error) {
	switch {
	case actorRole.IsCarrierOnly():
		// Чистый перевозчик всегда занимает сторону перевозчика
		return requestOwnerID, actorID, nil

	case actorRole == models.UserRoleSender:
		if actorID != requestOwnerID {
			return "", "", apperrors.NewForbiddenError("contract", "Only the request owner can propose as sender")
		}
		if counterpartID == "" {
			return "", "", apperrors.NewBadRequestError("carrier_id is required when the sender proposes a contract")
		}
		return actorID, counterpartID, nil

	case actorRole == models.UserRoleSenderCarrier:
		// Двойная роль: владелец заявки выступает отправителем,
		// не-владелец - перевозчиком
		if actorID == requestOwnerID {
			if counterpartID == "" {
				return "", "", apperrors.NewBadRequestError("carrier_id is required when the sender proposes a contract")
			}
			return actorID, counterpartID, nil
		}
		return requestOwnerID, actorID, nil

	default:
		return "", "", apperrors.NewForbiddenError("contract", "Role cannot participate in contracts")
	}
}

func (s *contractService) CreateContract(db *gorm.DB, actorID string, req *dto.CreateContractRequest) (*models.Contract, error) {
	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "Actor not found")
	}

	request, err := s.requestRepo.FindByID(db, req.RequestID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}
	if request.Hidden {
		return nil, apperrors.NewNotFoundError("request", "Shipment request not found")
	}

	senderID, carrierID, err := resolveParties(actorID, actor.Role, request.SenderID, req.CarrierID)
	if err != nil {
		return nil, err
	}
	if senderID == carrierID {
		return nil, apperrors.NewForbiddenError("contract", "Request owner cannot be their own carrier")
	}

	if _, err := s.userRepo.FindByID(db, carrierID); err != nil {
		return nil, apperrors.NewNotFoundError("user", "Carrier not found")
	}

	if req.OfferID != nil {
		if _, err := s.offerRepo.FindByID(db, *req.OfferID); err != nil {
			return nil, apperrors.NewNotFoundError("offer", "Transport offer not found")
		}
	}

	// Не более одного активного (не отмененного) контракта на заявку
	if _, err := s.contractRepo.FindActiveByRequest(db, req.RequestID); err == nil {
		return nil, apperrors.NewConflictError("contract", "Request already has an active contract")
	} else if err != repositories.ErrContractNotFound {
		return nil, err
	}

	contract := &models.Contract{
		RequestID: req.RequestID,
		OfferID:   req.OfferID,
		SenderID:  senderID,
		CarrierID: carrierID,
		Price:     decimal.NewFromFloat(req.Price).Round(2),
		Status:    models.ContractStatusProposed,
	}
	if err := contract.AppendTimeline(models.TimelineEntry{
		Status:    string(models.ContractStatusProposed),
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	// Создание контракта и смена статуса заявки атомарны
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.contractRepo.Create(tx, contract); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(tx, req.RequestID, models.RequestStatusInNegotiation)
	})
	if err != nil {
		return nil, err
	}

	observability.ContractTransitionsTotal.WithLabelValues(string(models.ContractStatusProposed)).Inc()
	return contract, nil
}

func (s *contractService) Transition(db *gorm.DB, actorID, contractID string, action models.ContractAction) (*models.Contract, error) {
	contract, err := s.contractRepo.FindByID(db, contractID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("contract", "Contract not found")
	}

	if !contract.IsParty(actorID) {
		return nil, apperrors.NewForbiddenError("contract", "Actor is not a contract party")
	}

	rule, ok := models.TransitionFor(action, contract.Status)
	if !ok {
		return nil, apperrors.NewInvalidStatusError("contract",
			"Transition '"+string(action)+"' is not allowed from status '"+string(contract.Status)+"'")
	}

	switch rule.Actor {
	case models.PartySender:
		if actorID != contract.SenderID {
			return nil, apperrors.NewForbiddenError("contract", "Only the sender can perform this transition")
		}
	case models.PartyCarrier:
		if actorID != contract.CarrierID {
			return nil, apperrors.NewForbiddenError("contract", "Only the carrier can perform this transition")
		}
	}

	entry := models.TimelineEntry{
		Status:    string(rule.To),
		Timestamp: time.Now().UTC(),
	}
	if action == models.ContractActionCancel {
		entry.By = actorID
	}
	if err := contract.AppendTimeline(entry); err != nil {
		return nil, err
	}

	// CAS на статусе контракта + смена статуса заявки в одной транзакции
	from := contract.Status
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.contractRepo.TransitionStatus(tx, contract, from, rule.To); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(tx, contract.RequestID, rule.RequestStatus)
	})
	if err != nil {
		if err == repositories.ErrStatusChanged {
			return nil, apperrors.NewInvalidStatusError("contract", "Contract status changed, retry after re-reading")
		}
		return nil, err
	}

	observability.ContractTransitionsTotal.WithLabelValues(string(rule.To)).Inc()
	return contract, nil
}

func (s *contractService) GetContract(db *gorm.DB, actorID, contractID string) (*dto.ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(db, contractID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("contract", "Contract not found")
	}

	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "Actor not found")
	}
	if !contract.IsParty(actorID) && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("contract", "Actor is not a contract party")
	}

	timeline, err := contract.DecodeTimeline()
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByContract(db, contractID)
	if err != nil {
		return nil, err
	}

	return &dto.ContractResponse{
		Contract: contract,
		Timeline: timeline,
		Reviews:  reviews,
	}, nil
}

func (s *contractService) ListMyContracts(db *gorm.DB, actorID, status string, page, pageSize int) (*dto.ContractListResponse, error) {
	offset := (page - 1) * pageSize
	contracts, total, err := s.contractRepo.FindByParty(db, actorID, status, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.ContractListResponse{
		Contracts: contracts,
		PageInfo:  dto.NewPageInfo(total, page, pageSize),
	}, nil
}
