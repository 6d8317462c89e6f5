package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/srinibas-vastra/backend/internal/config"
	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired gates the admin surface. A missing/invalid session is 401; a valid
// session without the stored admin flag (or a bootstrap email match) is 403.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		claims, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthenticated",
			})
		}

		if contains(adminEmails, claims.Email) {
			return c.Next()
		}

		var user models.User
		if err := db.Select("is_admin").First(&user, "id = ?", claims.UserID).Error; err == nil {
			if user.IsAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "Forbidden",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
