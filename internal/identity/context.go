package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoToken = errors.New("no token in context")

// Claims is the slice of the identity provider's token this service cares about.
type Claims struct {
	UserID uuid.UUID
	Email  string
}

// FromContext extracts the verified token claims stored by the auth middleware.
func FromContext(c *fiber.Ctx) (Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Claims{}, ErrNoToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, errors.New("sub claim is not a UUID")
	}

	email, _ := mapClaims["email"].(string)
	return Claims{UserID: userID, Email: email}, nil
}
