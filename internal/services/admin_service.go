package services

import (
	"encoding/json"

	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	GetSettings(db *gorm.DB) (*models.PlatformSettings, error)
	UpdateSettings(db *gorm.DB, adminID string, req *dto.UpdateSettingsRequest) (*models.PlatformSettings, error)
	ListUsers(db *gorm.DB, page, pageSize int) (*dto.UserListResponse, error)
	SetUserStatus(db *gorm.DB, adminID, userID string, status models.UserStatus) (*models.User, error)
	HideRequest(db *gorm.DB, adminID, requestID string, hidden bool) error
	HideOffer(db *gorm.DB, adminID, offerID string, hidden bool) error
	GetStats(db *gorm.DB) (*dto.PlatformStats, error)
	ListPayments(db *gorm.DB, page, pageSize int) (*dto.PaymentListResponse, error)
	ListAuditLog(db *gorm.DB, page, pageSize int) ([]models.AuditLog, int64, error)
}

type adminService struct {
	userRepo     repositories.UserRepository
	requestRepo  repositories.RequestRepository
	offerRepo    repositories.OfferRepository
	contractRepo repositories.ContractRepository
	paymentRepo  repositories.PaymentRepository
	reviewRepo   repositories.ReviewRepository
	settingsRepo repositories.SettingsRepository
	auditRepo    repositories.AuditRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	requestRepo repositories.RequestRepository,
	offerRepo repositories.OfferRepository,
	contractRepo repositories.ContractRepository,
	paymentRepo repositories.PaymentRepository,
	reviewRepo repositories.ReviewRepository,
	settingsRepo repositories.SettingsRepository,
	auditRepo repositories.AuditRepository,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		offerRepo:    offerRepo,
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		reviewRepo:   reviewRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
	}
}

func (s *adminService) GetSettings(db *gorm.DB) (*models.PlatformSettings, error) {
	return s.settingsRepo.Get(db)
}

func (s *adminService) UpdateSettings(db *gorm.DB, adminID string, req *dto.UpdateSettingsRequest) (*models.PlatformSettings, error) {
	fields := map[string]interface{}{}
	if req.CommissionEnabled != nil {
		fields["commission_enabled"] = *req.CommissionEnabled
	}
	if req.SenderRate != nil {
		fields["sender_rate"] = *req.SenderRate
	}
	if req.CarrierRate != nil {
		fields["carrier_rate"] = *req.CarrierRate
	}
	if len(fields) == 0 {
		return s.settingsRepo.Get(db)
	}

	var settings *models.PlatformSettings
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		settings, err = s.settingsRepo.Update(tx, fields)
		if err != nil {
			return err
		}
		return s.audit(tx, adminID, "settings.update", "settings", models.SettingsKeyMain, fields)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *adminService) ListUsers(db *gorm.DB, page, pageSize int) (*dto.UserListResponse, error) {
	offset := (page - 1) * pageSize
	users, total, err := s.userRepo.FindAll(db, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &dto.UserListResponse{
		Users:    users,
		PageInfo: dto.NewPageInfo(total, page, pageSize),
	}, nil
}

func (s *adminService) SetUserStatus(db *gorm.DB, adminID, userID string, status models.UserStatus) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}
	if user.Role == models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("admin", "Administrator accounts cannot be suspended")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateFields(tx, userID, map[string]interface{}{"status": status}); err != nil {
			return err
		}
		return s.audit(tx, adminID, "user.set_status", "user", userID, map[string]interface{}{"status": status})
	})
	if err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(db, userID)
}

func (s *adminService) HideRequest(db *gorm.DB, adminID, requestID string, hidden bool) error {
	if _, err := s.requestRepo.FindByID(db, requestID); err != nil {
		return apperrors.NewNotFoundError("request", "Shipment request not found")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.requestRepo.SetHidden(tx, requestID, hidden); err != nil {
			return err
		}
		return s.audit(tx, adminID, "request.set_hidden", "request", requestID, map[string]interface{}{"hidden": hidden})
	})
}

func (s *adminService) HideOffer(db *gorm.DB, adminID, offerID string, hidden bool) error {
	if _, err := s.offerRepo.FindByID(db, offerID); err != nil {
		return apperrors.NewNotFoundError("offer", "Transport offer not found")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.offerRepo.SetHidden(tx, offerID, hidden); err != nil {
			return err
		}
		return s.audit(tx, adminID, "offer.set_hidden", "offer", offerID, map[string]interface{}{"hidden": hidden})
	})
}

func (s *adminService) GetStats(db *gorm.DB) (*dto.PlatformStats, error) {
	stats := &dto.PlatformStats{}

	counts := []struct {
		dst   *int64
		count func(*gorm.DB) (int64, error)
	}{
		{&stats.Users, s.userRepo.Count},
		{&stats.Requests, s.requestRepo.Count},
		{&stats.Offers, s.offerRepo.Count},
		{&stats.Contracts, s.contractRepo.Count},
		{&stats.Payments, s.paymentRepo.Count},
		{&stats.Reviews, s.reviewRepo.Count},
	}
	for _, c := range counts {
		n, err := c.count(db)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	return stats, nil
}

func (s *adminService) ListPayments(db *gorm.DB, page, pageSize int) (*dto.PaymentListResponse, error) {
	offset := (page - 1) * pageSize
	payments, total, err := s.paymentRepo.FindAll(db, pageSize, offset)
	if err != nil {
		return nil, err
	}

	sum, err := s.paymentRepo.SumCompletedCommissions(db)
	if err != nil {
		return nil, err
	}

	return &dto.PaymentListResponse{
		Payments:        payments,
		PageInfo:        dto.NewPageInfo(total, page, pageSize),
		TotalCommission: sum.StringFixed(2),
	}, nil
}

func (s *adminService) ListAuditLog(db *gorm.DB, page, pageSize int) ([]models.AuditLog, int64, error) {
	offset := (page - 1) * pageSize
	return s.auditRepo.FindAll(db, pageSize, offset)
}

// audit пишет запись журнала действий администратора
func (s *adminService) audit(db *gorm.DB, adminID, action, targetType, targetID string, details map[string]interface{}) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return s.auditRepo.Create(db, &models.AuditLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    raw,
	})
}
