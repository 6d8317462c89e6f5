package dto

import "github.com/google/uuid"

type MeResponse struct {
	User MeUser `json:"user"`
}

type MeUser struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	IsAdmin          bool      `json:"isAdmin"`
	IsApprovedSeller bool      `json:"isApprovedSeller"`
}

// UpdateProfileRequest accepts the raw payload; numeric fields may arrive as either
// JSON numbers or strings and are coerced (or silently dropped) by the handler.
type UpdateProfileRequest struct {
	FirstName *string     `json:"firstName"`
	LastName  *string     `json:"lastName"`
	Phone     *string     `json:"phone"`
	Age       interface{} `json:"age"`
	Height    interface{} `json:"height"`
	Weight    interface{} `json:"weight"`
	Gender    *string     `json:"gender"`
}
