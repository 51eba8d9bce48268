package services

import (
	"testing"
	"time"

	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfferService() OfferService {
	return NewOfferService(
		repositories.NewOfferRepository(),
		repositories.NewContractRepository(),
		repositories.NewUserRepository(),
	)
}

func TestCreateOffer_RoleGate(t *testing.T) {
	db := newTestDB(t)
	svc := newOfferService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierPro)

	departure := time.Now().Add(48 * time.Hour)
	req := &dto.CreateOfferRequest{
		OriginCountry:      "Tunisia",
		DestinationCountry: "France",
		DepartureDate:      departure,
		ArrivalDate:        departure.Add(12 * time.Hour),
		CapacityKg:         15,
		Mode:               string(models.ShippingModeTerrestrial),
		PricePerKg:         4.5,
	}

	// Чистый отправитель возить не может
	_, err := svc.CreateOffer(db, sender.ID, req)
	assertAppErrorCode(t, err, apperrors.CodeForbidden)

	offer, err := svc.CreateOffer(db, carrier.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusActive, offer.Status)
	assert.Equal(t, "4.5", offer.PricePerKg.String())
}

func TestUpdateOffer_ArrivalBeforeDepartureRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newOfferService()

	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	offer := createTestOffer(t, db, carrier.ID)

	tooEarly := offer.DepartureDate.Add(-2 * time.Hour)
	_, err := svc.UpdateOffer(db, carrier.ID, offer.ID, &dto.UpdateOfferRequest{ArrivalDate: &tooEarly})
	assertAppErrorCode(t, err, apperrors.CodeValidationFailed)
}

func TestUpdateOffer_StatusPause(t *testing.T) {
	db := newTestDB(t)
	svc := newOfferService()

	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	offer := createTestOffer(t, db, carrier.ID)

	paused := string(models.OfferStatusPaused)
	updated, err := svc.UpdateOffer(db, carrier.ID, offer.ID, &dto.UpdateOfferRequest{Status: &paused})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPaused, updated.Status)
}

func TestDeleteOffer_SoftHideWhenContractReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newOfferService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	offer := createTestOffer(t, db, carrier.ID)
	request := createTestRequest(t, db, sender.ID)

	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusAccepted)
	require.NoError(t, db.Model(contract).Update("offer_id", offer.ID).Error)

	require.NoError(t, svc.DeleteOffer(db, carrier.ID, offer.ID))

	var stored models.TransportOffer
	require.NoError(t, db.First(&stored, "id = ?", offer.ID).Error)
	assert.True(t, stored.Hidden)

	_, err := svc.GetOffer(db, offer.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestDeleteOffer_PhysicalWhenUnreferenced(t *testing.T) {
	db := newTestDB(t)
	svc := newOfferService()

	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	offer := createTestOffer(t, db, carrier.ID)

	require.NoError(t, svc.DeleteOffer(db, carrier.ID, offer.ID))

	var count int64
	require.NoError(t, db.Model(&models.TransportOffer{}).Where("id = ?", offer.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteOffer_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newOfferService()

	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	stranger := createTestUser(t, db, models.UserRoleCarrierPro)
	offer := createTestOffer(t, db, carrier.ID)

	err := svc.DeleteOffer(db, stranger.ID, offer.ID)
	assertAppErrorCode(t, err, apperrors.CodeForbidden)
}
