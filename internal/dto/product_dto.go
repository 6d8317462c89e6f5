package dto

import (
	"strings"

	"github.com/google/uuid"
)

// ProductFilters is the flat optional parameter set for the public listing. Empty
// strings mean "not provided".
type ProductFilters struct {
	Category   string
	FabricType string
	WeaveType  string
	Color      string
	Pattern    string
	Occasion   string
	Search     string
	Sort       string
	Featured   string
}

// Normalize flattens the filter set into a stable string for cache keying.
func (f ProductFilters) Normalize() string {
	return strings.Join([]string{
		f.Category, f.FabricType, f.WeaveType, f.Color, f.Pattern,
		f.Occasion, f.Search, f.Sort, f.Featured,
	}, "|")
}

// ProductInput is the seller-facing create/update payload. Pointer fields
// distinguish "absent" from zero values on partial updates.
type ProductInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	MRP         *float64  `json:"mrp"`
	Stock       *int      `json:"stock"`
	IsAvailable *bool     `json:"isAvailable"`
	IsFeatured  *bool     `json:"isFeatured"`
	Category    *string   `json:"category"`
	SubCategory *string   `json:"subCategory"`
	FabricType  *string   `json:"fabricType"`
	WeaveType   *string   `json:"weaveType"`
	Color       *string   `json:"color"`
	Pattern     *string   `json:"pattern"`
	Origin      *string   `json:"origin"`
	Occasion    *[]string `json:"occasion"`
	Images      *[]string `json:"images"`
}

type CreateReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// AddCartItemRequest tolerates a missing or non-numeric quantity; the cart service
// clamps anything below 1 (including garbage) up to 1.
type AddCartItemRequest struct {
	ProductID uuid.UUID   `json:"productId"`
	Quantity  interface{} `json:"quantity"`
}

// UpdateCartItemRequest requires a numeric quantity; anything else is rejected.
type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  *float64  `json:"quantity"`
}
