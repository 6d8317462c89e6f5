package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a listing owned by a SellerProfile. Occasion and Images are JSON string
// arrays. A product is publicly visible only while IsAvailable is true and the owning
// seller is approved; that base predicate lives in the product service.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	MRP         *float64       `json:"mrp,omitempty"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	IsAvailable bool           `gorm:"not null;default:true" json:"isAvailable"`
	IsFeatured  bool           `gorm:"not null;default:false" json:"isFeatured"`
	Category    string         `gorm:"size:100;index" json:"category"`
	SubCategory string         `gorm:"size:100" json:"subCategory"`
	FabricType  string         `gorm:"size:100" json:"fabricType"`
	WeaveType   string         `gorm:"size:100" json:"weaveType"`
	Color       string         `gorm:"size:50" json:"color"`
	Pattern     string         `gorm:"size:100" json:"pattern"`
	Origin      string         `gorm:"size:100" json:"origin"`
	Occasion    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"occasion"`
	Images      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"images"`
	Seller      *SellerProfile `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Reviews     []ProductReview `gorm:"foreignKey:ProductID" json:"productReviews,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductReview links a rating and text to a product and its author. The average
// rating is computed on read, never stored.
type ProductReview struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Review    string    `gorm:"type:text" json:"review"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
