package services

import (
	"time"

	"waselni_backend/internal/auth"
	"waselni_backend/internal/logger"
	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(db *gorm.DB, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(db *gorm.DB, req *dto.LogoutRequest) error
	RequestPasswordReset(db *gorm.DB, req *dto.RequestPasswordResetRequest) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		Status:       models.UserStatusActive,
		Name:         req.Name,
		Phone:        req.Phone,
		Country:      req.Country,
		City:         req.City,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if err == repositories.ErrEmailTaken {
			return nil, apperrors.NewConflictError("auth", "Email already registered")
		}
		return nil, err
	}

	return s.issueTokens(db, user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("auth", "Account is suspended")
	}

	return s.issueTokens(db, user)
}

func (s *authService) Refresh(db *gorm.DB, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := auth.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	stored, err := s.userRepo.FindRefreshToken(db, req.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Refresh token revoked")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("User not found")
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("auth", "Account is suspended")
	}

	// Ротация: старый refresh токен отзывается
	if err := s.userRepo.DeleteRefreshToken(db, req.RefreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(db, user)
}

func (s *authService) Logout(db *gorm.DB, req *dto.LogoutRequest) error {
	return s.userRepo.DeleteRefreshToken(db, req.RefreshToken)
}

func (s *authService) RequestPasswordReset(db *gorm.DB, req *dto.RequestPasswordResetRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		// Не раскрываем, существует ли email
		return nil
	}

	token := uuid.NewString()
	exp := time.Now().Add(1 * time.Hour)
	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": exp,
	}); err != nil {
		return err
	}

	// Доставка токена (email/sms) вне ядра: токен только логируется
	logger.Info("password reset token issued", "user_id", user.ID, "token", token)
	return nil
}

func (s *authService) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	var user models.User
	err := db.Where("reset_token = ?", req.Token).First(&user).Error
	if err != nil {
		return apperrors.NewBadRequestError("Invalid or expired reset token")
	}
	if user.ResetTokenExp == nil || user.ResetTokenExp.Before(time.Now()) {
		return apperrors.NewBadRequestError("Invalid or expired reset token")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	return s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"password_hash":   hash,
		"reset_token":     "",
		"reset_token_exp": nil,
	})
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.TokenResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	claims, err := auth.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.SaveRefreshToken(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: claims.ExpiresAt.Time,
	}); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
