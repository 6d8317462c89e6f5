package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("Address not found")

type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) List(userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&addresses).Error
	return addresses, err
}

// Create stores a new address. The user's first address always becomes the default.
// Any default-setting write clears the user's other defaults inside the same
// transaction, so at most one default row can survive concurrent requests.
func (s *AddressService) Create(userID uuid.UUID, input dto.AddressInput) (*models.Address, error) {
	address := models.Address{
		UserID:    userID,
		District:  input.District,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		Country:   input.Country,
		IsDefault: input.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		}
		if address.IsDefault {
			if err := clearDefaults(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &address, nil
}

// Update overwrites the non-empty fields of an address. Setting isDefault=true
// demotes every other address transactionally.
func (s *AddressService) Update(userID uuid.UUID, req dto.UpdateAddressRequest) (*models.Address, error) {
	var address models.Address
	err := s.db.First(&address, "id = ? AND user_id = ?", req.ID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.District != "" {
		address.District = req.District
	}
	if req.Street != "" {
		address.Street = req.Street
	}
	if req.City != "" {
		address.City = req.City
	}
	if req.State != "" {
		address.State = req.State
	}
	if req.ZipCode != "" {
		address.ZipCode = req.ZipCode
	}
	if req.Country != "" {
		address.Country = req.Country
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := clearDefaults(tx, userID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		return tx.Save(&address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &address, nil
}

func (s *AddressService) Delete(userID, addressID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func clearDefaults(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
