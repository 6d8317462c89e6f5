package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("User not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Me returns the user with the derived isApprovedSeller flag.
func (s *UserService) Me(id uuid.UUID) (*models.User, bool, error) {
	var user models.User
	err := s.db.Preload("SellerProfile").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ErrUserNotFound
	}
	if err != nil {
		return nil, false, err
	}

	approvedSeller := user.SellerProfile != nil && user.SellerProfile.IsApprovedByAdmin
	return &user, approvedSeller, nil
}
