package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/models"
)

func addressInput(city string, isDefault bool) dto.AddressInput {
	return dto.AddressInput{
		District:  "Khordha",
		Street:    "Janpath",
		City:      city,
		State:     "Odisha",
		ZipCode:   "751001",
		Country:   "India",
		IsDefault: isDefault,
	}
}

func defaultCount(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&n).Error; err != nil {
		t.Fatalf("failed to count defaults: %v", err)
	}
	return n
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	user := createUser(t, db, "buyer@example.com")

	created, err := svc.Create(user.ID, addressInput("Bhubaneswar", false))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.IsDefault {
		t.Fatalf("first address must be default even when not requested")
	}
}

func TestDefaultIsExclusive(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	user := createUser(t, db, "buyer@example.com")

	first, err := svc.Create(user.ID, addressInput("Bhubaneswar", true))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(user.ID, addressInput("Puri", true))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !second.IsDefault {
		t.Fatalf("expected new default address")
	}
	if n := defaultCount(t, db, user.ID); n != 1 {
		t.Fatalf("expected exactly one default, got %d", n)
	}

	var reloaded models.Address
	if err := db.First(&reloaded, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("failed to reload first address: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("expected first address demoted")
	}
}

func TestUpdatePromotesDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	user := createUser(t, db, "buyer@example.com")

	first, _ := svc.Create(user.ID, addressInput("Bhubaneswar", true))
	second, _ := svc.Create(user.ID, addressInput("Puri", false))

	updated, err := svc.Update(user.ID, dto.UpdateAddressRequest{
		ID:           second.ID,
		AddressInput: dto.AddressInput{City: "Konark", IsDefault: true},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.City != "Konark" {
		t.Fatalf("expected city overwritten, got %s", updated.City)
	}
	if updated.Street != "Janpath" {
		t.Fatalf("expected empty fields left untouched, street became %q", updated.Street)
	}
	if !updated.IsDefault {
		t.Fatalf("expected address promoted to default")
	}
	if n := defaultCount(t, db, user.ID); n != 1 {
		t.Fatalf("expected exactly one default, got %d", n)
	}
	_ = first
}

func TestUpdateScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	owner := createUser(t, db, "owner@example.com")
	intruder := createUser(t, db, "intruder@example.com")

	address, _ := svc.Create(owner.ID, addressInput("Bhubaneswar", true))

	_, err := svc.Update(intruder.ID, dto.UpdateAddressRequest{
		ID:           address.ID,
		AddressInput: dto.AddressInput{City: "Elsewhere"},
	})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound for foreign address, got %v", err)
	}
}

func TestDeleteAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db)
	user := createUser(t, db, "buyer@example.com")

	address, _ := svc.Create(user.ID, addressInput("Bhubaneswar", true))

	if err := svc.Delete(user.ID, uuid.New()); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if err := svc.Delete(user.ID, address.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	addresses, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("expected no addresses after delete")
	}
}
