package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/services"
)

type AddressHandler struct {
	addresses *services.AddressService
}

func NewAddressHandler(addresses *services.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// GET /api/user/address
func (h *AddressHandler) List(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	addresses, err := h.addresses.List(claims.UserID)
	if err != nil {
		slog.Error("failed to list addresses", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"addresses": addresses})
}

// POST /api/user/address
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.AddressInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}

	address, err := h.addresses.Create(claims.UserID, req)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to create address", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "address": address})
}

// PUT /api/user/address
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}
	if req.ID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id is required"})
	}

	address, err := h.addresses.Update(claims.UserID, req)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to update address", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"success": true, "address": address})
}

// DELETE /api/user/address?id=<uuid>
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	addressID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id is required"})
	}

	if err := h.addresses.Delete(claims.UserID, addressID); err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to delete address", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
