package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seller onboarding statuses. The two legacy booleans remain authoritative for the
// wire contract; Status stores the same lifecycle explicitly so a rejected
// application is distinguishable from one that was never submitted.
const (
	SellerStatusUnsubmitted = "unsubmitted"
	SellerStatusPending     = "pending"
	SellerStatusApproved    = "approved"
	SellerStatusRejected    = "rejected"
)

// SellerProfile is a user's vendor registration record, 1:1 with User.
type SellerProfile struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ShopName             string              `gorm:"size:255" json:"shopName"`
	GSTNumber            string              `gorm:"size:30" json:"gstNumber"`
	IsRequestedForSeller bool                `gorm:"not null;default:false" json:"isRequestedForSeller"`
	IsApprovedByAdmin    bool                `gorm:"not null;default:false" json:"isApprovedByAdmin"`
	Status               string              `gorm:"size:20;not null;default:'unsubmitted'" json:"status"`
	User                 *User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address              *SellerAddress      `gorm:"foreignKey:SellerProfileID" json:"sellerAddress,omitempty"`
	Docs                 *SellerDocs         `gorm:"foreignKey:SellerProfileID" json:"sellerDocs,omitempty"`
	StatusEvents         []SellerStatusEvent `gorm:"foreignKey:SellerProfileID" json:"statusEvents,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

func (s *SellerProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SellerAddress is the shop address attached to a seller application, 1:1 with
// SellerProfile and replaced wholesale on each submission.
type SellerAddress struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SellerProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"seller_profile_id"`
	District        string    `gorm:"size:100" json:"district"`
	Street          string    `gorm:"size:255" json:"street"`
	City            string    `gorm:"size:100" json:"city"`
	State           string    `gorm:"size:100" json:"state"`
	ZipCode         string    `gorm:"size:20" json:"zipCode"`
	Country         string    `gorm:"size:100" json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (a *SellerAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SellerDocs holds the four KYC document image URLs, persisted together when the
// application is submitted.
type SellerDocs struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SellerProfileID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"seller_profile_id"`
	PANCardFront     *string   `gorm:"size:500" json:"panCardFront"`
	PANCardBack      *string   `gorm:"size:500" json:"panCardBack"`
	AadhaarCardFront *string   `gorm:"size:500" json:"aadharCardFront"`
	AadhaarCardBack  *string   `gorm:"size:500" json:"aadharCardBack"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (d *SellerDocs) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// SellerStatusEvent is one row of the append-only onboarding audit trail.
type SellerStatusEvent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SellerProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_profile_id"`
	FromStatus      string    `gorm:"size:20;not null" json:"from_status"`
	ToStatus        string    `gorm:"size:20;not null" json:"to_status"`
	ActorID         uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (e *SellerStatusEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
