package dto

import (
	"attendance-tasks/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Role:      string(user.Role),
		IsLeader:  user.IsLeader,
		CreatedAt: user.CreatedAt,
	}
}

func UsersToUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *UserToUserResponse(u))
	}
	return out
}

func UserToSummary(user *models.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:        user.ID,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}

func GroupToSummary(group *models.Group) *GroupSummary {
	if group == nil {
		return nil
	}
	return &GroupSummary{
		ID:   group.ID,
		Name: group.Name,
		Slug: group.Slug,
	}
}

func GroupToGroupResponse(group *models.Group) *GroupResponse {
	if group == nil {
		return nil
	}
	resp := &GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Slug:      group.Slug,
		LeaderID:  group.LeaderID,
		Leader:    UserToSummary(group.Leader),
		Members:   make([]UserSummary, 0, len(group.Members)),
		CreatedAt: group.CreatedAt,
	}
	for _, m := range group.Members {
		if m.User != nil {
			resp.Members = append(resp.Members, *UserToSummary(m.User))
		} else {
			resp.Members = append(resp.Members, UserSummary{ID: m.UserID})
		}
	}
	return resp
}

func GroupsToGroupResponses(groups []*models.Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, *GroupToGroupResponse(g))
	}
	return out
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:                task.ID,
		Variant:           string(task.Variant),
		Description:       task.Description,
		OwnerID:           task.OwnerID,
		Owner:             UserToSummary(task.Owner),
		GroupID:           task.GroupID,
		Group:             GroupToSummary(task.Group),
		AssigneeID:        task.AssigneeID,
		Assignee:          UserToSummary(task.Assignee),
		AssignerID:        task.AssignerID,
		Assigner:          UserToSummary(task.Assigner),
		SuggesterID:       task.SuggesterID,
		Suggester:         UserToSummary(task.Suggester),
		IsConfirmed:       task.IsConfirmed,
		PendingCompletion: task.PendingCompletion,
		Completed:         task.Completed,
		StartDate:         task.StartDate,
		Deadline:          task.Deadline,
		DateAssigned:      task.DateAssigned,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *TaskToTaskResponse(t))
	}
	return out
}
