package handlers

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/services"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GET /api/user/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	cart, err := h.carts.GetCart(claims.UserID)
	if err != nil {
		slog.Error("failed to load cart", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

// POST /api/user/cart
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}
	if req.ProductID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "productId is required"})
	}

	item, cart, err := h.carts.AddItem(claims.UserID, req.ProductID, coerceQuantity(req.Quantity))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrProductUnavailable):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		case services.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to add cart item", "error", err, "user_id", claims.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true, "item": item, "cart": cart})
}

// PATCH /api/user/cart
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}
	if req.ProductID == uuid.Nil || req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "productId and quantity are required",
		})
	}

	item, removed, err := h.carts.UpdateItem(claims.UserID, req.ProductID, int(math.Floor(*req.Quantity)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartNotFound), errors.Is(err, services.ErrCartItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to update cart item", "error", err, "user_id", claims.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
	}

	if removed {
		return c.JSON(fiber.Map{"success": true, "removed": true})
	}
	return c.JSON(fiber.Map{"success": true, "item": item})
}

// DELETE /api/user/cart?productId=<uuid>
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "productId is required"})
	}

	if err := h.carts.RemoveItem(claims.UserID, productID); err != nil {
		switch {
		case errors.Is(err, services.ErrCartNotFound), errors.Is(err, services.ErrCartItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to remove cart item", "error", err, "user_id", claims.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

// coerceQuantity accepts the loose quantity shapes clients send on add:
// JSON numbers, numeric strings, or nothing at all. Anything unusable
// falls back to 1.
func coerceQuantity(v interface{}) int {
	switch q := v.(type) {
	case float64:
		return int(math.Floor(q))
	case string:
		if n, err := strconv.ParseFloat(q, 64); err == nil {
			return int(math.Floor(n))
		}
	}
	return 1
}
