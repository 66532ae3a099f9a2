package middleware

import (
	"errors"

	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected middleware validates JWT tokens and sets user context
// role ไม่ได้อ่านจาก token, service ดึงจาก directory ทุก request
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			logger.DebugContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		c.Locals(utils.UserLocalsKey, userCtx)
		return c.Next()
	}
}
