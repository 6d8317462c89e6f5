package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address belongs to a User. At most one row per user carries IsDefault=true; the
// address service enforces that inside a single transaction on every default-setting
// write.
type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	District  string    `gorm:"size:100" json:"district"`
	Street    string    `gorm:"size:255" json:"street"`
	City      string    `gorm:"size:100" json:"city"`
	State     string    `gorm:"size:100" json:"state"`
	ZipCode   string    `gorm:"size:20" json:"zipCode"`
	Country   string    `gorm:"size:100" json:"country"`
	IsDefault bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
