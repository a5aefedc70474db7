package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"payflow/services"
)

const employeeIDKey = "employee_id"

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

// RequireEmployee accepts only requests carrying a valid session token and
// stores the token's employee id for the handlers.
func RequireEmployee(tokens *services.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			return err
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, services.ErrInvalidToken.Error())
		}

		c.Locals(employeeIDKey, claims.EmployeeID)
		return c.Next()
	}
}

// EmployeeID returns the id RequireEmployee authenticated, or false when the
// route is not behind it.
func EmployeeID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(employeeIDKey).(uint)
	return id, ok
}
