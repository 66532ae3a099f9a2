package middleware

import (
	"errors"

	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler จัดการ error ที่หลุดจาก handler (route ไม่เจอ, panic)
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusForbidden:
				errCode = utils.ErrCodeForbidden
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeInvalidState
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Unhandled error", "path", c.Path(), "error", err)
		}

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
