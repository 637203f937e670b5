package middleware

import (
	"strings"

	"devconnect/internal/identity"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

var tokens *identity.TokenManager

// InitMiddleware initializes the authentication middleware with the token
// manager used to verify inbound credentials.
func InitMiddleware(m *identity.TokenManager) {
	tokens = m
}

// AuthRequired enforces authentication for protected routes. It is the single
// authorization gate: handlers behind it never re-verify the token, they read
// the resolved account ID from c.Locals("userID").
func AuthRequired(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("No token, authorization denied"))
	}

	userID, err := tokens.Verify(raw)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Token is not valid"))
	}

	c.Locals("userID", userID)
	return c.Next()
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
