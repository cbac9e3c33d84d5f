package middleware

import (
	"log"
	"strings"

	"estoque/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

// AuthRequired is a Fiber middleware guarding mutating routes. It accepts the
// session cookie set at login or an Authorization bearer header, and rejects
// the request before the handler (and therefore the store) is ever reached.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Não autorizado",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Não autorizado",
			})
		}

		// Store the identity in the Fiber context for subsequent handlers.
		c.Locals("user_id", claims["sub"])
		c.Locals("user_name", claims["name"])

		return c.Next()
	}
}
