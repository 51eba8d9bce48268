package services

import (
	"testing"

	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestService() RequestService {
	return NewRequestService(
		repositories.NewRequestRepository(),
		repositories.NewContractRepository(),
		repositories.NewUserRepository(),
	)
}

func TestCreateRequest_RoleGate(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	dual := createTestUser(t, db, models.UserRoleSenderCarrier)

	req := &dto.CreateRequestRequest{
		OriginCountry:      "France",
		DestinationCountry: "Tunisia",
		WeightKg:           5,
		Mode:               string(models.ShippingModeAir),
	}

	// Чистый перевозчик отправлять не может
	_, err := svc.CreateRequest(db, carrier.ID, req)
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	// Двойная роль может
	created, err := svc.CreateRequest(db, dual.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusOpen, created.Status)
	assert.Equal(t, dual.ID, created.SenderID)
}

func TestGetRequest_HiddenBehavesAsMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	request := createTestRequest(t, db, sender.ID)
	require.NoError(t, db.Model(request).Update("hidden", true).Error)

	_, err := svc.GetRequest(db, request.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestUpdateRequest_OwnerOrAdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	stranger := createTestUser(t, db, models.UserRoleSender)
	admin := createTestUser(t, db, models.UserRoleAdmin)
	request := createTestRequest(t, db, sender.ID)

	desc := "хрупкое, не кантовать"
	_, err := svc.UpdateRequest(db, stranger.ID, request.ID, &dto.UpdateRequestRequest{Description: &desc})
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	updated, err := svc.UpdateRequest(db, admin.ID, request.ID, &dto.UpdateRequestRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
}

func TestDeleteRequest_SoftHideWhenContractExists(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)

	require.NoError(t, svc.DeleteRequest(db, sender.ID, request.ID))

	// Запись осталась, но скрыта
	var stored models.ShipmentRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.True(t, stored.Hidden)

	_, err := svc.GetRequest(db, request.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestDeleteRequest_PhysicalWhenNoContract(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	request := createTestRequest(t, db, sender.ID)

	require.NoError(t, svc.DeleteRequest(db, sender.ID, request.ID))

	var count int64
	require.NoError(t, db.Model(&models.ShipmentRequest{}).Where("id = ?", request.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteRequest_CancelledContractAllowsPhysicalDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusCancelled)

	require.NoError(t, svc.DeleteRequest(db, sender.ID, request.ID))

	var count int64
	require.NoError(t, db.Model(&models.ShipmentRequest{}).Where("id = ?", request.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddPhoto_Appends(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	request := createTestRequest(t, db, sender.ID)

	updated, err := svc.AddPhoto(db, sender.ID, request.ID, "https://cdn.test/a.jpg")
	require.NoError(t, err)
	updated, err = svc.AddPhoto(db, sender.ID, request.ID, "https://cdn.test/b.jpg")
	require.NoError(t, err)

	assert.JSONEq(t, `["https://cdn.test/a.jpg","https://cdn.test/b.jpg"]`, string(updated.Photos))
}

func TestListRequests_FilterByCorridor(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService()

	sender := createTestUser(t, db, models.UserRoleSender)
	createTestRequest(t, db, sender.ID)

	other := createTestRequest(t, db, sender.ID)
	require.NoError(t, db.Model(other).Update("destination_country", "Morocco").Error)

	page, err := svc.ListRequests(db, repositories.RequestFilter{
		OriginCountry:      "France",
		DestinationCountry: "Tunisia",
	}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
