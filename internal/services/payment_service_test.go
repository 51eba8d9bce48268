package services

import (
	"context"
	"testing"

	"waselni_backend/internal/models"
	"waselni_backend/internal/payments"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentService() PaymentService {
	return NewPaymentService(
		repositories.NewPaymentRepository(),
		repositories.NewContractRepository(),
		repositories.NewSettingsRepository(),
		repositories.NewUserRepository(),
		payments.NewSandboxProvider(),
	)
}

func paymentRequest(contractID string) *dto.CreatePaymentRequest {
	return &dto.CreatePaymentRequest{
		ContractID: contractID,
		ReturnURL:  "https://app.test/return",
		CancelURL:  "https://app.test/cancel",
	}
}

func TestCreatePayment_SnapshotsCommission(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	resp, err := svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)

	p := resp.Payment
	assert.Equal(t, models.PaymentStatusPending, p.Status)
	assert.True(t, p.CommissionEnabled)
	assert.Equal(t, "30.3", p.TotalAmount.String())
	assert.Equal(t, "29.7", p.CarrierPayout.String())
	assert.NotEmpty(t, p.ProviderPaymentID)
	assert.NotEmpty(t, resp.ApprovalURL)

	// Изменение ставок после создания не трогает существующий платеж
	_, err = repositories.NewSettingsRepository().Update(db, map[string]interface{}{"sender_rate": 0.5})
	require.NoError(t, err)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, "30.3", stored.TotalAmount.String())
}

func TestCreatePayment_OnlySenderAndAcceptedStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)

	proposed := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusProposed)

	// Перевозчик платить не может
	_, err := svc.CreatePayment(ctx, db, carrier.ID, paymentRequest(proposed.ID))
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	// До принятия контракта платеж невозможен
	_, err = svc.CreatePayment(ctx, db, sender.ID, paymentRequest(proposed.ID))
	assertAppErrorCode(t, err, apperrors.CodeInvalidStatus)
}

func TestCreatePayment_SecondPaymentConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	_, err := svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)

	_, err = svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestExecutePayment_CompletesAndMarksContract(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	resp, err := svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)

	completed, err := svc.ExecutePayment(ctx, db, sender.ID, resp.Payment.ID, &dto.ExecutePaymentRequest{PayerID: "payer-1"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, completed.Status)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", resp.Payment.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	var storedContract models.Contract
	require.NoError(t, db.First(&storedContract, "id = ?", contract.ID).Error)
	assert.Equal(t, "paid", storedContract.PaymentStatus)
	require.NotNil(t, storedContract.PaymentID)
	assert.Equal(t, resp.Payment.ID, *storedContract.PaymentID)
}

func TestExecutePayment_DeclineAllowsRetryWithNewPayment(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	resp, err := svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)

	// Песочница отклоняет этого плательщика
	_, err = svc.ExecutePayment(ctx, db, sender.ID, resp.Payment.ID, &dto.ExecutePaymentRequest{PayerID: payments.DeclinePayerID})
	assertAppErrorCode(t, err, apperrors.CodeExternalServiceError)

	var failed models.Payment
	require.NoError(t, db.First(&failed, "id = ?", resp.Payment.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, failed.Status)
	assert.NotEmpty(t, failed.FailureReason)

	// Проваленный платеж не блокирует создание нового
	second, err := svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, second.Payment.Status)
}

func TestExecutePayment_OnlyPendingAndOnlySender(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()
	ctx := context.Background()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	resp, err := svc.CreatePayment(ctx, db, sender.ID, paymentRequest(contract.ID))
	require.NoError(t, err)

	_, err = svc.ExecutePayment(ctx, db, carrier.ID, resp.Payment.ID, &dto.ExecutePaymentRequest{PayerID: "payer-1"})
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	_, err = svc.ExecutePayment(ctx, db, sender.ID, resp.Payment.ID, &dto.ExecutePaymentRequest{PayerID: "payer-1"})
	require.NoError(t, err)

	// Повторное исполнение завершенного платежа отклоняется
	_, err = svc.ExecutePayment(ctx, db, sender.ID, resp.Payment.ID, &dto.ExecutePaymentRequest{PayerID: "payer-1"})
	assertAppErrorCode(t, err, apperrors.CodeInvalidStatus)
}

func TestGetContractPayments_PartyOrAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	stranger := createTestUser(t, db, models.UserRoleSender)
	admin := createTestUser(t, db, models.UserRoleAdmin)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	_, err := svc.GetContractPayments(db, stranger.ID, contract.ID)
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	_, err = svc.GetContractPayments(db, carrier.ID, contract.ID)
	require.NoError(t, err)

	_, err = svc.GetContractPayments(db, admin.ID, contract.ID)
	require.NoError(t, err)
}
