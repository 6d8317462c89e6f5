package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record. The primary key is the subject UUID issued by the
// identity provider, so a row can be created on first authenticated request without
// holding any local credential material.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	IsAdmin       bool           `gorm:"not null;default:false" json:"isAdmin"`
	Profile       *Profile       `gorm:"foreignKey:UserID" json:"userProfile,omitempty"`
	SellerProfile *SellerProfile `gorm:"foreignKey:UserID" json:"sellerProfile,omitempty"`
	Addresses     []Address      `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
