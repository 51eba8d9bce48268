package services

import (
	"context"
	"testing"

	"waselni_backend/internal/config"
	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService() AdminService {
	return NewAdminService(
		repositories.NewUserRepository(),
		repositories.NewRequestRepository(),
		repositories.NewOfferRepository(),
		repositories.NewContractRepository(),
		repositories.NewPaymentRepository(),
		repositories.NewReviewRepository(),
		repositories.NewSettingsRepository(),
		repositories.NewAuditRepository(),
	)
}

func TestGetSettings_SeedsFromConfig(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	prev := config.AppConfig
	t.Cleanup(func() { config.AppConfig = prev })

	cfg := &config.Config{}
	cfg.Commission.Enabled = true
	cfg.Commission.SenderRate = 0.02
	cfg.Commission.CarrierRate = 0.03
	config.AppConfig = cfg

	// Первое обращение создает singleton со значениями из конфига
	settings, err := svc.GetSettings(db)
	require.NoError(t, err)
	assert.True(t, settings.CommissionEnabled)
	assert.InDelta(t, 0.02, settings.SenderRate, 0.0001)
	assert.InDelta(t, 0.03, settings.CarrierRate, 0.0001)
}

func TestUpdateSettings_WritesAuditEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	admin := createTestUser(t, db, models.UserRoleAdmin)

	enabled := false
	rate := 0.02
	settings, err := svc.UpdateSettings(db, admin.ID, &dto.UpdateSettingsRequest{
		CommissionEnabled: &enabled,
		SenderRate:        &rate,
	})
	require.NoError(t, err)
	assert.False(t, settings.CommissionEnabled)
	assert.InDelta(t, 0.02, settings.SenderRate, 0.0001)

	entries, total, err := svc.ListAuditLog(db, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, admin.ID, entries[0].AdminID)
	assert.Equal(t, "settings.update", entries[0].Action)
}

func TestSetUserStatus_SuspendAndProtectAdmins(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	admin := createTestUser(t, db, models.UserRoleAdmin)
	otherAdmin := createTestUser(t, db, models.UserRoleAdmin)
	user := createTestUser(t, db, models.UserRoleSender)

	suspended, err := svc.SetUserStatus(db, admin.ID, user.ID, models.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, suspended.Status)

	// Админа заблокировать нельзя
	_, err = svc.SetUserStatus(db, admin.ID, otherAdmin.ID, models.UserStatusSuspended)
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	restored, err := svc.SetUserStatus(db, admin.ID, user.ID, models.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, restored.Status)
}

func TestHideRequestAndOffer_Moderation(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	admin := createTestUser(t, db, models.UserRoleAdmin)
	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	offer := createTestOffer(t, db, carrier.ID)

	require.NoError(t, svc.HideRequest(db, admin.ID, request.ID, true))
	require.NoError(t, svc.HideOffer(db, admin.ID, offer.ID, true))

	var storedRequest models.ShipmentRequest
	require.NoError(t, db.First(&storedRequest, "id = ?", request.ID).Error)
	assert.True(t, storedRequest.Hidden)

	var storedOffer models.TransportOffer
	require.NoError(t, db.First(&storedOffer, "id = ?", offer.ID).Error)
	assert.True(t, storedOffer.Hidden)

	// Каждое действие модерации оставляет след в журнале
	_, total, err := svc.ListAuditLog(db, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	require.NoError(t, svc.HideRequest(db, admin.ID, request.ID, false))
	require.NoError(t, db.First(&storedRequest, "id = ?", request.ID).Error)
	assert.False(t, storedRequest.Hidden)
}

func TestGetStats_CountsEntities(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	createTestOffer(t, db, carrier.ID)
	createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusProposed)

	stats, err := svc.GetStats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Requests)
	assert.Equal(t, int64(1), stats.Offers)
	assert.Equal(t, int64(1), stats.Contracts)
	assert.Equal(t, int64(0), stats.Payments)
	assert.Equal(t, int64(0), stats.Reviews)
}

func TestListPayments_SumsCompletedCommissions(t *testing.T) {
	db := newTestDB(t)
	adminSvc := newAdminService()
	paySvc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	resp, err := paySvc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)
	_, err = paySvc.ExecutePayment(ctx, db, sender.ID, resp.Payment.ID, &dto.ExecutePaymentRequest{PayerID: "payer-1"})
	require.NoError(t, err)

	page, err := adminSvc.ListPayments(db, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Payments, 1)
	// Комиссия платформы: 0.30 с отправителя + 0.30 с перевозчика
	assert.Equal(t, "0.60", page.TotalCommission)
}
