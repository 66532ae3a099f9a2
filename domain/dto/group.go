package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name     string    `json:"name" validate:"required,min=2,max=120"`
	LeaderID uuid.UUID `json:"leaderId" validate:"required"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

type GroupSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type GroupResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Slug      string        `json:"slug"`
	LeaderID  uuid.UUID     `json:"leaderId"`
	Leader    *UserSummary  `json:"leader,omitempty"`
	Members   []UserSummary `json:"members"`
	CreatedAt time.Time     `json:"createdAt"`
}
