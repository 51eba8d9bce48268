package services

import (
	"waselni_backend/internal/models"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/services/dto"
	"waselni_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetMe(db *gorm.DB, userID string) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	GetPublicProfile(db *gorm.DB, userID string) (*dto.UserProfileResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetMe(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}
	return user, nil
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
			if err == repositories.ErrUserNotFound {
				return nil, apperrors.NewNotFoundError("user", "User not found")
			}
			return nil, err
		}
	}

	return s.GetMe(db, userID)
}

func (s *userService) GetPublicProfile(db *gorm.DB, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	return &dto.UserProfileResponse{
		ID:            user.ID,
		Role:          user.Role,
		Name:          user.Name,
		Country:       user.Country,
		City:          user.City,
		AvatarURL:     user.AvatarURL,
		AverageRating: user.AverageRating(),
		RatingCount:   user.RatingCount,
	}, nil
}
