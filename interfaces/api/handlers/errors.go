package handlers

import (
	"errors"

	"attendance-tasks/pkg/apperror"
	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps a service error onto the response envelope. Errors
// without an apperror kind are infrastructure failures and are hidden.
func respondError(c *fiber.Ctx, err error, action string) error {
	ctx := c.UserContext()
	kind := apperror.KindOf(err)
	if kind == nil {
		logger.ErrorContext(ctx, action+" failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.WarnContext(ctx, action+" rejected", "kind", kind.Error(), "error", err)
	msg := apperror.Message(err)
	switch {
	case errors.Is(kind, apperror.ErrBadRequest):
		return utils.BadRequestResponse(c, msg)
	case errors.Is(kind, apperror.ErrForbidden):
		return utils.ForbiddenResponse(c, msg)
	case errors.Is(kind, apperror.ErrNotFound):
		return utils.NotFoundResponse(c, msg)
	default:
		return utils.InvalidStateResponse(c, msg)
	}
}

// bindBody parses and validates a JSON body into req. When it reports false
// the error response is already written and err is what the handler returns.
func bindBody(c *fiber.Ctx, req any) (bool, error) {
	ctx := c.UserContext()
	if err := c.BodyParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errs)
		return false, utils.ValidationErrorResponse(c, errs)
	}
	return true, nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		logger.WarnContext(c.UserContext(), "Invalid id parameter", "param", name, "value", c.Params(name))
		return uuid.Nil, false
	}
	return id, true
}

func caller(c *fiber.Ctx) (*utils.UserContext, bool) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Unauthorized access attempt")
		return nil, false
	}
	return user, true
}
