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

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List is the public catalogue endpoint; every query parameter is optional.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filters := dto.ProductFilters{
		Category:   c.Query("category"),
		FabricType: c.Query("fabricType"),
		WeaveType:  c.Query("weaveType"),
		Color:      c.Query("color"),
		Pattern:    c.Query("pattern"),
		Occasion:   c.Query("occasion"),
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Featured:   c.Query("featured"),
	}

	products, err := h.products.List(c.Context(), filters)
	if err != nil {
		slog.Error("failed to fetch products", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: services.ErrProductNotFound.Error(),
		})
	}

	product, avgRating, err := h.products.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) || errors.Is(err, services.ErrProductUnavailable) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to fetch product", "error", err, "product_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"product": product, "avgRating": avgRating})
}

func (h *ProductHandler) CreateReview(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: services.ErrProductNotFound.Error(),
		})
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	review, err := h.products.CreateReview(claims.UserID, productID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrProductUnavailable):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case services.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("failed to create review", "error", err, "product_id", productID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}
