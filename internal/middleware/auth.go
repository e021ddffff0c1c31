package middleware

import (
	"strings"

	"commune/internal/config"
	"commune/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// IdentityKey is the Fiber locals key under which the parsed caller identity
// is stored.
const IdentityKey = "identity"

// IdentityFrom returns the identity parsed by WithIdentity, or the zero
// Identity when the request carried no valid token.
func IdentityFrom(c *fiber.Ctx) models.Identity {
	if ident, ok := c.Locals(IdentityKey).(models.Identity); ok {
		return ident
	}
	return models.Identity{}
}

// parseIdentity validates a bearer token and extracts the subject and email
// claims. Returns the zero Identity when the token is missing or invalid.
func parseIdentity(c *fiber.Ctx) models.Identity {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.Identity{}
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.Identity{}
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}
	}

	ident := models.Identity{}
	if sub, ok := claims["sub"].(string); ok {
		ident.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	return ident
}

// WithIdentity parses the bearer token, if any, and stores the resulting
// identity in Fiber locals. It never rejects the request: an absent or
// invalid token just yields the zero Identity, matching the contract that
// identity resolution is not an error.
func WithIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := parseIdentity(c)
		if !ident.IsZero() {
			c.Locals(IdentityKey, ident)
		}
		return c.Next()
	}
}

// AuthRequired enforces a valid bearer token carrying an email claim on
// protected routes.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := IdentityFrom(c)
		if ident.IsZero() {
			ident = parseIdentity(c)
		}
		if ident.IsZero() || ident.Email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing bearer token",
			})
		}
		c.Locals(IdentityKey, ident)
		return c.Next()
	}
}
