package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

var ErrSellerNotFound = errors.New("Seller not found")

// DocCommitter promotes staged document URLs into the permanent namespace. Nil is
// allowed; URLs then pass through unchanged.
type DocCommitter interface {
	Commit(ctx context.Context, rawURL, owner string) (string, error)
}

type SellerService struct {
	db    *gorm.DB
	docs  DocCommitter
	cache *ListingCache
}

func NewSellerService(db *gorm.DB, docs DocCommitter, cache *ListingCache) *SellerService {
	return &SellerService{db: db, docs: docs, cache: cache}
}

// GetByUser returns the caller's seller profile with address and docs.
func (s *SellerService) GetByUser(userID uuid.UUID) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	err := s.db.Preload("Address").Preload("Docs").First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSellerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Submit finalizes a seller application: validate everything first, then commit
// staged uploads, then apply all persistence writes in a single transaction. The
// operation is an upsert, so re-submission while pending or after rejection replaces
// the previous application wholesale.
func (s *SellerService) Submit(ctx context.Context, userID uuid.UUID, req dto.ApplyRequest) (*models.SellerProfile, error) {
	if strings.TrimSpace(req.ShopName) == "" {
		return nil, Validation("shopName is required")
	}
	if strings.TrimSpace(req.GSTNumber) == "" {
		return nil, Validation("gstNumber is required")
	}
	docURLs := []string{
		req.Docs.PANCardFront, req.Docs.PANCardBack,
		req.Docs.AadhaarCardFront, req.Docs.AadhaarCardBack,
	}
	for _, u := range docURLs {
		if strings.TrimSpace(u) == "" {
			return nil, Validation("all four document images are required")
		}
	}

	if s.docs != nil {
		for i, u := range docURLs {
			committed, err := s.docs.Commit(ctx, u, userID.String())
			if err != nil {
				return nil, fmt.Errorf("failed to commit document: %w", err)
			}
			docURLs[i] = committed
		}
	}

	var profile models.SellerProfile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&profile, "user_id = ?", userID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.SellerProfile{UserID: userID, Status: models.SellerStatusUnsubmitted}
		}

		fromStatus := profile.Status
		profile.ShopName = req.ShopName
		profile.GSTNumber = req.GSTNumber
		profile.IsRequestedForSeller = true
		profile.IsApprovedByAdmin = false
		profile.Status = models.SellerStatusPending
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		address := models.SellerAddress{
			SellerProfileID: profile.ID,
			District:        req.Address.District,
			Street:          req.Address.Street,
			City:            req.Address.City,
			State:           req.Address.State,
			ZipCode:         req.Address.ZipCode,
			Country:         req.Address.Country,
		}
		if err := tx.Where("seller_profile_id = ?", profile.ID).Delete(&models.SellerAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		docs := models.SellerDocs{
			SellerProfileID:  profile.ID,
			PANCardFront:     &docURLs[0],
			PANCardBack:      &docURLs[1],
			AadhaarCardFront: &docURLs[2],
			AadhaarCardBack:  &docURLs[3],
		}
		if err := tx.Where("seller_profile_id = ?", profile.ID).Delete(&models.SellerDocs{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&docs).Error; err != nil {
			return err
		}

		return tx.Create(&models.SellerStatusEvent{
			SellerProfileID: profile.ID,
			FromStatus:      fromStatus,
			ToStatus:        models.SellerStatusPending,
			ActorID:         userID,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit seller application: %w", err)
	}
	return &profile, nil
}

// List returns every seller profile with its nested user, address, docs and audit
// trail, pending applications first.
func (s *SellerService) List() ([]models.SellerProfile, error) {
	var sellers []models.SellerProfile
	err := s.db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email")
		}).
		Preload("User.Profile").
		Preload("Address").
		Preload("Docs").
		Preload("StatusEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("is_requested_for_seller DESC").
		Find(&sellers).Error
	return sellers, err
}

// Approve sets the approved flag from any state. The requested flag is deliberately
// left untouched.
func (s *SellerService) Approve(ctx context.Context, sellerID, actorID uuid.UUID) error {
	return s.transition(ctx, sellerID, actorID, models.SellerStatusApproved, map[string]interface{}{
		"is_approved_by_admin": true,
		"status":               models.SellerStatusApproved,
	})
}

// Reject clears both flags from any state. On the wire this is indistinguishable
// from never having applied; the stored status and the audit trail keep the
// distinction.
func (s *SellerService) Reject(ctx context.Context, sellerID, actorID uuid.UUID) error {
	return s.transition(ctx, sellerID, actorID, models.SellerStatusRejected, map[string]interface{}{
		"is_approved_by_admin":    false,
		"is_requested_for_seller": false,
		"status":                  models.SellerStatusRejected,
	})
}

func (s *SellerService) transition(ctx context.Context, sellerID, actorID uuid.UUID, to string, updates map[string]interface{}) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var profile models.SellerProfile
		err := tx.First(&profile, "id = ?", sellerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSellerNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&profile).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&models.SellerStatusEvent{
			SellerProfileID: profile.ID,
			FromStatus:      profile.Status,
			ToStatus:        to,
			ActorID:         actorID,
		}).Error
	})
	if err != nil {
		return err
	}

	// Approval state gates public product visibility.
	s.cache.Invalidate(ctx)
	return nil
}

// DerivedStatus computes the three-valued public status from the stored flags, with
// the explicit status column disambiguating rejected from unsubmitted.
func DerivedStatus(p *models.SellerProfile) string {
	if p.IsApprovedByAdmin {
		return models.SellerStatusApproved
	}
	if p.IsRequestedForSeller {
		return models.SellerStatusPending
	}
	if p.Status == models.SellerStatusRejected {
		return models.SellerStatusRejected
	}
	return models.SellerStatusUnsubmitted
}
