package services

import (
	"testing"
	"time"

	"waselni_backend/database"
	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB - изолированная in-memory БД на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// In-memory sqlite живет на одном соединении
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "irrelevant",
		Role:         role,
		Status:       models.UserStatusActive,
		Name:         "Test " + string(role),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRequest(t *testing.T, db *gorm.DB, senderID string) *models.ShipmentRequest {
	t.Helper()

	request := &models.ShipmentRequest{
		SenderID:           senderID,
		OriginCountry:      "France",
		OriginCity:         "Paris",
		DestinationCountry: "Tunisia",
		DestinationCity:    "Tunis",
		WeightKg:           5,
		Mode:               models.ShippingModeAir,
		Status:             models.RequestStatusOpen,
		Photos:             []byte("[]"),
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func createTestOffer(t *testing.T, db *gorm.DB, carrierID string) *models.TransportOffer {
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
	require.NoError(t, db.Create(offer).Error)
	return offer
}

func createTestContract(t *testing.T, db *gorm.DB, requestID, senderID, carrierID string, status models.ContractStatus) *models.Contract {
	t.Helper()

	contract := &models.Contract{
		RequestID: requestID,
		SenderID:  senderID,
		CarrierID: carrierID,
		Price:     decimal.NewFromInt(30),
		Status:    status,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func newContractService() ContractService {
	return NewContractService(
		repositories.NewContractRepository(),
		repositories.NewRequestRepository(),
		repositories.NewOfferRepository(),
		repositories.NewUserRepository(),
		repositories.NewReviewRepository(),
	)
}
