package middleware

import (
	"attendance-tasks/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware สร้าง request ID สำหรับทุก request
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDHeader, requestID)
		// ใส่ request ID ใน context สำหรับ logging
		c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
