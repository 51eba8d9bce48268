package services

import (
	"testing"
	"time"

	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMatchingService() MatchingService {
	return NewMatchingService(
		repositories.NewRequestRepository(),
		repositories.NewOfferRepository(),
	)
}

func seedOffer(t *testing.T, db *gorm.DB, carrierID string, mutate func(*models.TransportOffer)) *models.TransportOffer {
	t.Helper()

	departure := time.Now().Add(24 * time.Hour)
	offer := &models.TransportOffer{
		CarrierID:          carrierID,
		OriginCountry:      "France",
		OriginCity:         "Paris",
		DestinationCountry: "Tunisia",
		DestinationCity:    "Tunis",
		DepartureDate:      departure,
		ArrivalDate:        departure.Add(6 * time.Hour),
		CapacityKg:         20,
		Mode:               models.ShippingModeAir,
		PricePerKg:         decimal.NewFromInt(6),
		Status:             models.OfferStatusActive,
	}
	if mutate != nil {
		mutate(offer)
	}
	require.NoError(t, db.Create(offer).Error)
	return offer
}

func TestMatchOffersForRequest_FiltersIncompatible(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID) // 5 кг, air, France -> Tunisia

	matching := seedOffer(t, db, carrier.ID, nil)
	seedOffer(t, db, carrier.ID, func(o *models.TransportOffer) {
		o.Mode = models.ShippingModeTerrestrial // не тот способ доставки
	})
	seedOffer(t, db, carrier.ID, func(o *models.TransportOffer) {
		o.OriginCountry = "Italy" // не тот коридор
	})
	seedOffer(t, db, carrier.ID, func(o *models.TransportOffer) {
		o.CapacityKg = 2 // не хватает емкости
	})
	seedOffer(t, db, carrier.ID, func(o *models.TransportOffer) {
		o.Status = models.OfferStatusPaused // приостановлено
	})
	seedOffer(t, db, carrier.ID, func(o *models.TransportOffer) {
		o.Hidden = true // скрыто модерацией
	})

	result, err := svc.MatchOffersForRequest(db, request.ID, 1, 20)
	require.NoError(t, err)

	require.Len(t, result.Offers, 1)
	assert.Equal(t, matching.ID, result.Offers[0].ID)
	assert.Equal(t, int64(1), result.Total)
}

func TestMatchOffersForRequest_ExactCapacityMatches(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID) // 5 кг

	seedOffer(t, db, carrier.ID, func(o *models.TransportOffer) {
		o.CapacityKg = 5 // ровно вес заявки
	})

	result, err := svc.MatchOffersForRequest(db, request.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, result.Offers, 1)
}

func TestMatchRequestsForOffer_FiltersIncompatible(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	offer := seedOffer(t, db, carrier.ID, nil) // 20 кг, air

	matching := createTestRequest(t, db, sender.ID)

	heavy := createTestRequest(t, db, sender.ID)
	require.NoError(t, db.Model(heavy).Update("weight_kg", 50).Error)

	closed := createTestRequest(t, db, sender.ID)
	require.NoError(t, db.Model(closed).Update("status", models.RequestStatusInNegotiation).Error)

	hidden := createTestRequest(t, db, sender.ID)
	require.NoError(t, db.Model(hidden).Update("hidden", true).Error)

	result, err := svc.MatchRequestsForOffer(db, offer.ID, 1, 20)
	require.NoError(t, err)

	require.Len(t, result.Requests, 1)
	assert.Equal(t, matching.ID, result.Requests[0].ID)
}

func TestMatching_ParentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newMatchingService()

	_, err := svc.MatchOffersForRequest(db, "00000000-0000-0000-0000-000000000000", 1, 20)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)

	_, err = svc.MatchRequestsForOffer(db, "00000000-0000-0000-0000-000000000000", 1, 20)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}
