package handlers

import (
	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/models"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe returns the caller's profile with capability hints for the UI.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.userService.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err, "Profile lookup")
	}

	return utils.SuccessResponse(c, dto.ProfileResponse{
		User:     *dto.UserToUserResponse(profile.User),
		LedGroup: dto.GroupToSummary(profile.LedGroup),
		MemberOf: dto.GroupToSummary(profile.MemberOf),
		Capabilities: dto.Capabilities{
			CanCreateGlobal: profile.CanCreateGlobal(),
			CanAssign:       profile.CanAssign(),
			CanManageGroup:  profile.CanManageGroup(),
		},
	})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var q dto.ListUsersQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}
	if err := utils.ValidateStruct(&q); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	users, err := h.userService.ListUsers(c.UserContext(), user.ID, models.UserRole(q.Role))
	if err != nil {
		return respondError(c, err, "User listing")
	}
	return utils.SuccessResponse(c, dto.UsersToUserResponses(users))
}
