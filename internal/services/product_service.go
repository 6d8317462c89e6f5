package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound    = errors.New("Product not found")
	ErrProductUnavailable = errors.New("Product not available")
)

type ProductService struct {
	db    *gorm.DB
	cache *ListingCache
}

func NewProductService(db *gorm.DB, cache *ListingCache) *ProductService {
	return &ProductService{db: db, cache: cache}
}

// List builds the public listing query from the optional filter set. The base
// predicate is non-negotiable: only available products from approved sellers are
// ever returned, regardless of the other parameters.
func (s *ProductService) List(ctx context.Context, f dto.ProductFilters) ([]models.Product, error) {
	cacheKey := s.cache.Key(ctx, f.Normalize())
	if payload, ok := s.cache.Get(ctx, cacheKey); ok {
		var cached []models.Product
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	q := s.db.Model(&models.Product{}).
		Joins("JOIN seller_profiles ON seller_profiles.id = products.seller_id").
		Where("products.is_available = ? AND seller_profiles.is_approved_by_admin = ?", true, true)

	// Empty strings are "not provided"; each present scalar filter is ANDed as an
	// exact match.
	if f.Category != "" {
		q = q.Where("products.category = ?", f.Category)
	}
	if f.FabricType != "" {
		q = q.Where("products.fabric_type = ?", f.FabricType)
	}
	if f.WeaveType != "" {
		q = q.Where("products.weave_type = ?", f.WeaveType)
	}
	if f.Color != "" {
		q = q.Where("products.color = ?", f.Color)
	}
	if f.Pattern != "" {
		q = q.Where("products.pattern = ?", f.Pattern)
	}
	if f.Featured == "true" {
		q = q.Where("products.is_featured = ?", true)
	}
	if f.Occasion != "" {
		q = occasionContains(q, f.Occasion)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.origin) LIKE ? OR LOWER(products.sub_category) LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("products.price ASC")
	case "price_desc":
		q = q.Order("products.price DESC")
	default:
		q = q.Order("products.created_at DESC")
	}

	var products []models.Product
	err := q.
		Preload("Seller", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "shop_name")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "product_id", "rating")
		}).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	if payload, err := json.Marshal(products); err == nil {
		s.cache.Set(ctx, cacheKey, payload)
	}
	return products, nil
}

// occasionContains matches set membership on the JSON tag array. Postgres gets the
// native containment operator; other dialects (SQLite in tests) walk json_each.
func occasionContains(q *gorm.DB, value string) *gorm.DB {
	if q.Dialector.Name() == "postgres" {
		b, _ := json.Marshal([]string{value})
		return q.Where("products.occasion @> ?", datatypes.JSON(b))
	}
	return q.Where("EXISTS (SELECT 1 FROM json_each(products.occasion) WHERE json_each.value = ?)", value)
}

// Get returns one product with its seller, shop location and reviews, plus the
// average rating computed on read (nil when there are no reviews). Unavailable
// products are hidden the same as missing ones.
func (s *ProductService) Get(id uuid.UUID) (*models.Product, *float64, error) {
	var product models.Product
	err := s.db.
		Preload("Seller", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "shop_name")
		}).
		Preload("Seller.Address", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "seller_profile_id", "city", "state")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id")
		}).
		Preload("Reviews.User.Profile", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "first_name", "last_name")
		}).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrProductNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !product.IsAvailable {
		return nil, nil, ErrProductUnavailable
	}

	var avg *float64
	if len(product.Reviews) > 0 {
		sum := 0
		for _, r := range product.Reviews {
			sum += r.Rating
		}
		v := float64(sum) / float64(len(product.Reviews))
		avg = &v
	}
	return &product, avg, nil
}

// CreateReview stores a rating against an available product.
func (s *ProductService) CreateReview(userID, productID uuid.UUID, req dto.CreateReviewRequest) (*models.ProductReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, Validation("rating must be between 1 and 5")
	}

	var product models.Product
	err := s.db.First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, ErrProductUnavailable
	}

	review := models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Review:    req.Review,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// ListBySeller returns a seller's own inventory, including hidden products.
func (s *ProductService) ListBySeller(sellerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error
	return products, err
}

// Create adds a product to a seller's inventory and invalidates cached listings.
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, input dto.ProductInput) (*models.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, Validation("name is required")
	}
	if input.Description == nil || strings.TrimSpace(*input.Description) == "" {
		return nil, Validation("description is required")
	}
	if input.Price == nil || *input.Price <= 0 {
		return nil, Validation("price must be greater than zero")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, Validation("stock cannot be negative")
	}

	product := models.Product{
		SellerID:    sellerID,
		Name:        *input.Name,
		Price:       *input.Price,
		MRP:         input.MRP,
		IsAvailable: true,
		Occasion:    datatypes.JSON([]byte("[]")),
		Images:      datatypes.JSON([]byte("[]")),
	}
	applyProductInput(&product, input)

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.cache.Invalidate(ctx)
	return &product, nil
}

// Update applies a partial update to a product the seller owns.
func (s *ProductService) Update(ctx context.Context, sellerID, productID uuid.UUID, input dto.ProductInput) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, "id = ? AND seller_id = ?", productID, sellerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, Validation("name cannot be empty")
	}
	if input.Price != nil && *input.Price <= 0 {
		return nil, Validation("price must be greater than zero")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, Validation("stock cannot be negative")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.MRP != nil {
		product.MRP = input.MRP
	}
	applyProductInput(&product, input)

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(ctx)
	return &product, nil
}

func (s *ProductService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	result := s.db.Where("id = ? AND seller_id = ?", productID, sellerID).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	s.cache.Invalidate(ctx)
	return nil
}

func applyProductInput(product *models.Product, input dto.ProductInput) {
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.SubCategory != nil {
		product.SubCategory = *input.SubCategory
	}
	if input.FabricType != nil {
		product.FabricType = *input.FabricType
	}
	if input.WeaveType != nil {
		product.WeaveType = *input.WeaveType
	}
	if input.Color != nil {
		product.Color = *input.Color
	}
	if input.Pattern != nil {
		product.Pattern = *input.Pattern
	}
	if input.Origin != nil {
		product.Origin = *input.Origin
	}
	if input.Occasion != nil {
		if b, err := json.Marshal(*input.Occasion); err == nil {
			product.Occasion = datatypes.JSON(b)
		}
	}
	if input.Images != nil {
		if b, err := json.Marshal(*input.Images); err == nil {
			product.Images = datatypes.JSON(b)
		}
	}
}
