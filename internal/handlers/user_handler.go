package handlers

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/services"
)

type UserHandler struct {
	users    *services.UserService
	profiles *services.ProfileService
}

func NewUserHandler(users *services.UserService, profiles *services.ProfileService) *UserHandler {
	return &UserHandler{users: users, profiles: profiles}
}

// GET /api/user/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	user, approvedSeller, err := h.users.Me(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to load user", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(dto.MeResponse{User: dto.MeUser{
		ID:               user.ID,
		Email:            user.Email,
		IsAdmin:          user.IsAdmin,
		IsApprovedSeller: approvedSeller,
	}})
}

// GET /api/user/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	profile, err := h.profiles.Get(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to load profile", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// POST /api/user/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid payload"})
	}

	update := services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Age:       coerceInt(req.Age),
		Height:    coerceFloat(req.Height),
		Weight:    coerceFloat(req.Weight),
	}

	profile, err := h.profiles.Upsert(claims.UserID, update)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to update profile", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// Profile numerics arrive as JSON numbers or numeric strings depending
// on the client form. Values that parse to nothing are dropped rather
// than rejected.
func coerceInt(v interface{}) *int {
	if f := coerceFloat(v); f != nil {
		n := int(math.Floor(*f))
		return &n
	}
	return nil
}

func coerceFloat(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return &f
		}
	}
	return nil
}
