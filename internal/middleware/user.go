package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

// EnsureUser creates the identity row on first authenticated request. The primary
// key is the provider's subject UUID, so concurrent first requests converge on the
// same row.
func EnsureUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthenticated",
			})
		}

		user := models.User{ID: claims.UserID, Email: claims.Email}
		if err := db.Where("id = ?", claims.UserID).FirstOrCreate(&user).Error; err != nil {
			slog.Error("failed to ensure user", "error", err, "user_id", claims.UserID)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: "Internal Server Error",
			})
		}
		return c.Next()
	}
}
