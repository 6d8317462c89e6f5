package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/srinibas-vastra/backend/internal/models"
)

func TestAddItemCreatesCartAndAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	seller := createApprovedSeller(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, nil)
	buyer := createUser(t, db, "buyer@example.com")

	item, cart, err := svc.AddItem(buyer.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
	if cart == nil || len(cart.Items) != 1 {
		t.Fatalf("expected cart with 1 item")
	}

	// Same product again accumulates into the existing line.
	item, cart, err = svc.AddItem(buyer.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", item.Quantity)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected a single line item, got %d", len(cart.Items))
	}
}

func TestAddItemClampsQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	seller := createApprovedSeller(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, nil)
	buyer := createUser(t, db, "buyer@example.com")

	item, _, err := svc.AddItem(buyer.ID, product.ID, -7)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected clamped quantity 1, got %d", item.Quantity)
	}
}

func TestAddItemRejectsUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	seller := createApprovedSeller(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")

	hidden := createProduct(t, db, seller.ID, func(p *models.Product) { p.IsAvailable = false })
	if _, _, err := svc.AddItem(buyer.ID, hidden.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}

	soldOut := createProduct(t, db, seller.ID, func(p *models.Product) { p.Stock = 0 })
	if _, _, err := svc.AddItem(buyer.ID, soldOut.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable for zero stock, got %v", err)
	}

	if _, _, err := svc.AddItem(buyer.ID, uuid.New(), 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGetCartNilWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createUser(t, db, "buyer@example.com")

	cart, err := svc.GetCart(buyer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil cart for a user who never added anything")
	}
}

func TestUpdateItemRemovesAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	seller := createApprovedSeller(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, nil)
	buyer := createUser(t, db, "buyer@example.com")

	if _, _, err := svc.AddItem(buyer.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	item, removed, err := svc.UpdateItem(buyer.ID, product.ID, 4)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if removed || item.Quantity != 4 {
		t.Fatalf("expected quantity overwritten to 4, got removed=%v qty=%v", removed, item)
	}

	_, removed, err = svc.UpdateItem(buyer.ID, product.ID, 0)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if !removed {
		t.Fatalf("expected zero quantity to remove the line")
	}

	if _, _, err := svc.UpdateItem(buyer.ID, product.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestUpdateItemMissingCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createUser(t, db, "buyer@example.com")

	if _, _, err := svc.UpdateItem(buyer.ID, uuid.New(), 1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	seller := createApprovedSeller(t, db, "seller@example.com")
	product := createProduct(t, db, seller.ID, nil)
	buyer := createUser(t, db, "buyer@example.com")

	if _, _, err := svc.AddItem(buyer.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.RemoveItem(buyer.ID, product.ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := svc.RemoveItem(buyer.ID, product.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound after removal, got %v", err)
	}

	// The cart itself survives empty.
	cart, err := svc.GetCart(buyer.ID)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if cart == nil || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart to persist")
	}
}
