package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListUsersQuery struct {
	Role string `query:"role" validate:"omitempty,oneof=intern coordinator"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	IsLeader  bool      `json:"isLeader"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}

// Capabilities are UI hints only; every operation re-checks on the server.
type Capabilities struct {
	CanCreateGlobal bool `json:"canCreateGlobal"`
	CanAssign       bool `json:"canAssign"`
	CanManageGroup  bool `json:"canManageGroup"`
}

type ProfileResponse struct {
	User         UserResponse  `json:"user"`
	LedGroup     *GroupSummary `json:"ledGroup"`
	MemberOf     *GroupSummary `json:"memberOf"`
	Capabilities Capabilities  `json:"capabilities"`
}
