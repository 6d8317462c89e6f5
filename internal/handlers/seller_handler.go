package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/models"
	"github.com/srinibas-vastra/backend/internal/services"
)

type SellerHandler struct {
	sellers  *services.SellerService
	products *services.ProductService
}

func NewSellerHandler(sellers *services.SellerService, products *services.ProductService) *SellerHandler {
	return &SellerHandler{sellers: sellers, products: products}
}

// GET /api/seller/me
func (h *SellerHandler) Me(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	profile, err := h.sellers.GetByUser(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrSellerNotFound) {
			return c.JSON(fiber.Map{"sellerProfile": nil})
		}
		slog.Error("failed to load seller profile", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"sellerProfile": profile})
}

// POST /api/seller/apply
func (h *SellerHandler) Apply(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}

	profile, err := h.sellers.Submit(c.Context(), claims.UserID, req)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to submit seller application", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"success": true, "sellerProfile": profile})
}

// GET /api/seller/products
func (h *SellerHandler) ListProducts(c *fiber.Ctx) error {
	profile, fail := h.requireApprovedSeller(c)
	if fail != nil {
		return fail(c)
	}

	products, err := h.products.ListBySeller(profile.ID)
	if err != nil {
		slog.Error("failed to list seller products", "error", err, "seller_id", profile.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"products": products})
}

// POST /api/seller/products
func (h *SellerHandler) CreateProduct(c *fiber.Ctx) error {
	profile, fail := h.requireApprovedSeller(c)
	if fail != nil {
		return fail(c)
	}

	var input dto.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}

	product, err := h.products.Create(c.Context(), profile.ID, input)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to create product", "error", err, "seller_id", profile.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": product})
}

// PATCH /api/seller/products/:id
func (h *SellerHandler) UpdateProduct(c *fiber.Ctx) error {
	profile, fail := h.requireApprovedSeller(c)
	if fail != nil {
		return fail(c)
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Product not found"})
	}

	var input dto.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}

	product, err := h.products.Update(c.Context(), profile.ID, productID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case services.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to update product", "error", err, "seller_id", profile.ID, "product_id", productID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}

// DELETE /api/seller/products/:id
func (h *SellerHandler) DeleteProduct(c *fiber.Ctx) error {
	profile, fail := h.requireApprovedSeller(c)
	if fail != nil {
		return fail(c)
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Product not found"})
	}

	if err := h.products.Delete(c.Context(), profile.ID, productID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to delete product", "error", err, "seller_id", profile.ID, "product_id", productID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// requireApprovedSeller resolves the caller's seller profile and enforces the
// approval gate. A non-nil fail func carries the error response to return.
func (h *SellerHandler) requireApprovedSeller(c *fiber.Ctx) (*models.SellerProfile, fiber.Handler) {
	claims, err := identity.FromContext(c)
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
		}
	}

	profile, err := h.sellers.GetByUser(claims.UserID)
	if err != nil && !errors.Is(err, services.ErrSellerNotFound) {
		slog.Error("failed to load seller profile", "error", err, "user_id", claims.UserID)
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
	}
	if profile == nil || !profile.IsApprovedByAdmin {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Seller not approved"})
		}
	}

	return profile, nil
}
