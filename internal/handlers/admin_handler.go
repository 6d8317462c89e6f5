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

type AdminHandler struct {
	sellers *services.SellerService
}

func NewAdminHandler(sellers *services.SellerService) *AdminHandler {
	return &AdminHandler{sellers: sellers}
}

type adminSellerView struct {
	models.SellerProfile
	DerivedStatus string `json:"derivedStatus"`
}

// GET /api/admin/sellers
func (h *AdminHandler) ListSellers(c *fiber.Ctx) error {
	profiles, err := h.sellers.List()
	if err != nil {
		slog.Error("failed to list sellers", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	views := make([]adminSellerView, 0, len(profiles))
	for i := range profiles {
		views = append(views, adminSellerView{
			SellerProfile: profiles[i],
			DerivedStatus: services.DerivedStatus(&profiles[i]),
		})
	}

	return c.JSON(fiber.Map{"sellers": views})
}

// POST /api/admin/sellers
func (h *AdminHandler) ActOnSeller(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.SellerActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}
	if req.SellerID == uuid.Nil || (req.Action != "approve" && req.Action != "reject") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "sellerId and action (approve/reject) are required",
		})
	}

	var actErr error
	var message string
	switch req.Action {
	case "approve":
		actErr = h.sellers.Approve(c.Context(), req.SellerID, claims.UserID)
		message = "Seller approved successfully"
	case "reject":
		actErr = h.sellers.Reject(c.Context(), req.SellerID, claims.UserID)
		message = "Seller application rejected"
	}

	if actErr != nil {
		if errors.Is(actErr, services.ErrSellerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: actErr.Error()})
		}
		slog.Error("seller action failed", "error", actErr, "seller_id", req.SellerID, "action", req.Action)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: message})
}
