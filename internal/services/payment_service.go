package services

import (
	"context"

	"waselni_backend/internal/models"
	"waselni_backend/internal/observability"
	"waselni_backend/internal/payments"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, db *gorm.DB, actorID string, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	ExecutePayment(ctx context.Context, db *gorm.DB, actorID, paymentID string, req *dto.ExecutePaymentRequest) (*models.Payment, error)
	GetContractPayments(db *gorm.DB, actorID, contractID string) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo  repositories.PaymentRepository
	contractRepo repositories.ContractRepository
	settingsRepo repositories.SettingsRepository
	userRepo     repositories.UserRepository
	provider     payments.Provider
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	contractRepo repositories.ContractRepository,
	settingsRepo repositories.SettingsRepository,
	userRepo repositories.UserRepository,
	provider payments.Provider,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		provider:     provider,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, db *gorm.DB, actorID string, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	contract, err := s.contractRepo.FindByID(db, req.ContractID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("contract", "Contract not found")
	}

	if contract.SenderID != actorID {
		return nil, apperrors.NewForbiddenError("payment", "Only the contract sender can create a payment")
	}
	if contract.Status != models.ContractStatusAccepted {
		return nil, apperrors.NewInvalidStatusError("payment", "Payment requires an accepted contract")
	}

	// Не более одного не-проваленного платежа на контракт
	if _, err := s.paymentRepo.FindNonFailedByContract(db, req.ContractID); err == nil {
		return nil, apperrors.NewConflictError("payment", "A payment already exists for this contract")
	} else if err != repositories.ErrPaymentNotFound {
		return nil, err
	}

	// Снапшот конфигурации комиссии: дальнейшие изменения ставок
	// не влияют на этот платеж
	settings, err := s.settingsRepo.Get(db)
	if err != nil {
		return nil, err
	}
	settlement := CalculateSettlement(contract.Price, CommissionSnapshot{
		Enabled:     settings.CommissionEnabled,
		SenderRate:  decimal.NewFromFloat(settings.SenderRate),
		CarrierRate: decimal.NewFromFloat(settings.CarrierRate),
	})

	order, err := s.provider.CreateOrder(ctx, payments.OrderRequest{
		Amount:      settlement.TotalAmount,
		Currency:    "eur",
		Description: "Parcel delivery contract " + contract.ID,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
		Metadata:    map[string]string{"contract_id": contract.ID},
	})
	if err != nil {
		observability.PaymentsTotal.WithLabelValues("provider_error").Inc()
		return nil, apperrors.NewExternalServiceError("payment", "Payment provider rejected order creation", err)
	}

	payment := &models.Payment{
		ContractID:        contract.ID,
		ProviderPaymentID: order.ProviderID,
		SenderID:          contract.SenderID,
		CarrierID:         contract.CarrierID,
		BasePrice:         settlement.BasePrice,
		SenderCommission:  settlement.SenderCommission,
		CarrierCommission: settlement.CarrierCommission,
		TotalAmount:       settlement.TotalAmount,
		CarrierPayout:     settlement.CarrierPayout,
		CommissionEnabled: settlement.CommissionEnabled,
		Status:            models.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(db, payment); err != nil {
		return nil, err
	}

	observability.PaymentsTotal.WithLabelValues("created").Inc()
	return &dto.PaymentResponse{
		Payment:     payment,
		ApprovalURL: order.ApprovalURL,
	}, nil
}

func (s *paymentService) ExecutePayment(ctx context.Context, db *gorm.DB, actorID, paymentID string, req *dto.ExecutePaymentRequest) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(db, paymentID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("payment", "Payment not found")
	}

	if payment.SenderID != actorID {
		return nil, apperrors.NewForbiddenError("payment", "Only the paying sender can execute the payment")
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, apperrors.NewInvalidStatusError("payment", "Payment is not pending")
	}

	if err := s.provider.Execute(ctx, payment.ProviderPaymentID, req.PayerID); err != nil {
		// Отказ провайдера фиксируется на платеже, после чего
		// можно создать новый платеж
		if failErr := s.paymentRepo.Fail(db, payment, err.Error()); failErr != nil {
			return nil, failErr
		}
		observability.PaymentsTotal.WithLabelValues("failed").Inc()
		return nil, apperrors.NewExternalServiceError("payment", "Payment provider declined execution", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Complete(tx, payment); err != nil {
			return err
		}
		return s.contractRepo.MarkPaid(tx, payment.ContractID, payment.ID)
	})
	if err != nil {
		if err == repositories.ErrPaymentChanged {
			return nil, apperrors.NewInvalidStatusError("payment", "Payment status changed, retry after re-reading")
		}
		return nil, err
	}

	observability.PaymentsTotal.WithLabelValues("completed").Inc()
	return payment, nil
}

func (s *paymentService) GetContractPayments(db *gorm.DB, actorID, contractID string) ([]models.Payment, error) {
	contract, err := s.contractRepo.FindByID(db, contractID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("contract", "Contract not found")
	}

	actor, err := s.userRepo.FindByID(db, actorID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "Actor not found")
	}
	if !contract.IsParty(actorID) && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("payment", "Actor is not a contract party")
	}

	return s.paymentRepo.FindByContract(db, contractID)
}
