package dto

import "github.com/google/uuid"

// ApplyRequest is the atomic seller-application submission: shop fields, the shop
// address, and the four document URLs staged by prior uploads.
type ApplyRequest struct {
	ShopName  string       `json:"shopName"`
	GSTNumber string       `json:"gstNumber"`
	Address   AddressInput `json:"address"`
	Docs      DocURLs      `json:"docs"`
}

type DocURLs struct {
	PANCardFront     string `json:"panCardFront"`
	PANCardBack      string `json:"panCardBack"`
	AadhaarCardFront string `json:"aadharCardFront"`
	AadhaarCardBack  string `json:"aadharCardBack"`
}

type SellerActionRequest struct {
	SellerID uuid.UUID `json:"sellerId"`
	Action   string    `json:"action"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
