package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("Cart not found")
	ErrCartItemNotFound = errors.New("Cart item not found")
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem adds quantity of a product to the user's cart, creating the cart lazily.
// Quantities below 1 are clamped up to 1. An existing line item accumulates; the
// (cart, product) unique index guarantees a single row per product. Stock is checked
// for existence only, never decremented.
func (s *CartService) AddItem(userID, productID uuid.UUID, quantity int) (*models.CartItem, *models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	err := s.db.First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrProductNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !product.IsAvailable || product.Stock < 1 {
		return nil, nil, ErrProductUnavailable
	}

	cart := models.Cart{UserID: userID}
	if err := s.db.Where("user_id = ?", userID).FirstOrCreate(&cart).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to ensure cart: %w", err)
	}

	var item models.CartItem
	err = s.db.First(&item, "cart_id = ? AND product_id = ?", cart.ID, productID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	case err != nil:
		return nil, nil, err
	default:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	full, err := s.GetCart(userID)
	if err != nil {
		return nil, nil, err
	}
	return &item, full, nil
}

// GetCart returns the cart with all line items and current product snapshots, or
// nil when the user has never added anything.
func (s *CartService) GetCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem overwrites a line item's quantity with the supplied absolute value.
// Zero or negative quantity removes the line, reported via removed rather than an
// error.
func (s *CartService) UpdateItem(userID, productID uuid.UUID, quantity int) (*models.CartItem, bool, error) {
	cart, item, err := s.findItem(userID, productID)
	if err != nil {
		return nil, false, err
	}
	_ = cart

	if quantity <= 0 {
		if err := s.db.Delete(item).Error; err != nil {
			return nil, false, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return nil, true, nil
	}

	item.Quantity = quantity
	if err := s.db.Save(item).Error; err != nil {
		return nil, false, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, false, nil
}

// RemoveItem deletes a line item outright.
func (s *CartService) RemoveItem(userID, productID uuid.UUID) error {
	_, item, err := s.findItem(userID, productID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) findItem(userID, productID uuid.UUID) (*models.Cart, *models.CartItem, error) {
	var cart models.Cart
	err := s.db.First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrCartNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var item models.CartItem
	err = s.db.First(&item, "cart_id = ? AND product_id = ?", cart.ID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return &cart, &item, nil
}
