package middleware

import (
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/srinibas-vastra/backend/internal/config"
	"github.com/srinibas-vastra/backend/internal/dto"
)

// AuthRequired verifies the identity provider's JWT on every request it wraps.
// Supabase projects either share a legacy HS256 secret or publish a JWKS for
// asymmetric keys; the JWKS URL takes precedence when both are configured.
func AuthRequired(cfg *config.Config) (fiber.Handler, error) {
	errorHandler := func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "Unauthenticated",
		})
	}

	if cfg.SupabaseJWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.SupabaseJWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  time.Minute,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load identity provider JWKS: %w", err)
		}
		return jwtware.New(jwtware.Config{
			KeyFunc:      jwks.Keyfunc,
			ErrorHandler: errorHandler,
		}), nil
	}

	if cfg.SupabaseJWTSecret == "" {
		return nil, fmt.Errorf("either SUPABASE_JWKS_URL or SUPABASE_JWT_SECRET is required")
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.SupabaseJWTSecret)},
		ErrorHandler: errorHandler,
	}), nil
}
