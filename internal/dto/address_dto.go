package dto

import "github.com/google/uuid"

type AddressInput struct {
	District  string `json:"district"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

type UpdateAddressRequest struct {
	ID uuid.UUID `json:"id"`
	AddressInput
}
