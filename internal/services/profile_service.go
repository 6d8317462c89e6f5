package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("Profile not found")

// ProfileUpdate carries only the whitelisted, already-coerced fields. Nil means the
// field was absent or malformed and is left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Age       *int
	Height    *float64
	Weight    *float64
	Gender    *string
}

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or updates the user's profile. An out-of-range gender value is
// dropped silently, matching the field-whitelist contract: malformed input never
// rejects the request.
func (s *ProfileService) Upsert(userID uuid.UUID, upd ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
	}

	if upd.FirstName != nil {
		profile.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		profile.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		profile.Phone = *upd.Phone
	}
	if upd.Age != nil {
		profile.Age = upd.Age
	}
	if upd.Height != nil {
		profile.Height = upd.Height
	}
	if upd.Weight != nil {
		profile.Weight = upd.Weight
	}
	if upd.Gender != nil {
		switch *upd.Gender {
		case models.GenderMale, models.GenderFemale, models.GenderOther:
			profile.Gender = *upd.Gender
		}
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return &profile, nil
}
