package handlers

import (
	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/services"
	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateGroupRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	group, err := h.groupService.CreateGroup(ctx, user.ID, &req)
	if err != nil {
		return respondError(c, err, "Group creation")
	}

	logger.InfoContext(ctx, "Group created", "group_id", group.ID, "slug", group.Slug, "leader_id", group.LeaderID)
	return utils.CreatedResponse(c, dto.GroupToGroupResponse(group))
}

func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.groupService.ListGroups(c.UserContext())
	if err != nil {
		return respondError(c, err, "Group listing")
	}
	return utils.SuccessResponse(c, dto.GroupsToGroupResponses(groups))
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	groupID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid group ID")
	}

	group, err := h.groupService.GetGroup(c.UserContext(), groupID)
	if err != nil {
		return respondError(c, err, "Group lookup")
	}
	return utils.SuccessResponse(c, dto.GroupToGroupResponse(group))
}

func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	groupID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid group ID")
	}

	var req dto.AddMemberRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	group, err := h.groupService.AddMember(ctx, user.ID, groupID, &req)
	if err != nil {
		return respondError(c, err, "Member addition")
	}

	logger.InfoContext(ctx, "Member added", "group_id", groupID, "member_id", req.UserID)
	return utils.SuccessResponse(c, dto.GroupToGroupResponse(group))
}

func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	groupID, ok := paramUUID(c, "id")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid group ID")
	}
	memberID, ok := paramUUID(c, "userId")
	if !ok {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}

	group, err := h.groupService.RemoveMember(ctx, user.ID, groupID, memberID)
	if err != nil {
		return respondError(c, err, "Member removal")
	}

	logger.InfoContext(ctx, "Member removed", "group_id", groupID, "member_id", memberID)
	return utils.SuccessResponse(c, dto.GroupToGroupResponse(group))
}
