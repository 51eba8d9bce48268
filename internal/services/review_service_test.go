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

func newReviewService() ReviewService {
	return NewReviewService(
		repositories.NewReviewRepository(),
		repositories.NewContractRepository(),
		repositories.NewUserRepository(),
	)
}

func TestSubmitReview_OnlyAfterDelivery(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusPickedUp)

	_, err := svc.SubmitReview(db, sender.ID, contract.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "ok"})
	assertAppErrorCode(t, err, apperrors.CodeInvalidStatus)
}

func TestSubmitReview_OnlyParties(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	stranger := createTestUser(t, db, models.UserRoleSender)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusDelivered)

	_, err := svc.SubmitReview(db, stranger.ID, contract.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "ok"})
	assertAppErrorCode(t, err, apperrors.CodeForbidden)
}

func TestSubmitReview_BothSidesOnceEach(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)
	request := createTestRequest(t, db, sender.ID)
	contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusDelivered)

	fromSender, err := svc.SubmitReview(db, sender.ID, contract.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "Надежный перевозчик"})
	require.NoError(t, err)
	assert.Equal(t, carrier.ID, fromSender.RevieweeID)

	fromCarrier, err := svc.SubmitReview(db, carrier.ID, contract.ID, &dto.CreateReviewRequest{Rating: 4, Comment: "Все четко"})
	require.NoError(t, err)
	assert.Equal(t, sender.ID, fromCarrier.RevieweeID)

	// Повторный отзыв той же стороны отклоняется
	_, err = svc.SubmitReview(db, sender.ID, contract.ID, &dto.CreateReviewRequest{Rating: 1, Comment: "дубль"})
	assertAppErrorCode(t, err, apperrors.CodeConflict)

	reviews, err := svc.GetContractReviews(db, contract.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestSubmitReview_AggregatesRating(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)

	// Два доставленных контракта, два отзыва на перевозчика
	for _, rating := range []int{5, 4} {
		request := createTestRequest(t, db, sender.ID)
		contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusDelivered)
		_, err := svc.SubmitReview(db, sender.ID, contract.ID, &dto.CreateReviewRequest{Rating: rating, Comment: "ok"})
		require.NoError(t, err)
	}

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", carrier.ID).Error)
	assert.Equal(t, int64(9), updated.RatingSum)
	assert.Equal(t, int64(2), updated.RatingCount)
	assert.InDelta(t, 4.5, updated.AverageRating(), 0.0001)
}

func TestGetUserReviews_Paged(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService()

	sender := createTestUser(t, db, models.UserRoleSender)
	carrier := createTestUser(t, db, models.UserRoleCarrierIndividual)

	for i := 0; i < 3; i++ {
		request := createTestRequest(t, db, sender.ID)
		contract := createTestContract(t, db, request.ID, sender.ID, carrier.ID, models.ContractStatusDelivered)
		_, err := svc.SubmitReview(db, sender.ID, contract.ID, &dto.CreateReviewRequest{Rating: 5, Comment: "ok"})
		require.NoError(t, err)
	}

	page, err := svc.GetUserReviews(db, carrier.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Reviews, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
