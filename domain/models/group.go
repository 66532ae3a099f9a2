package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a team with exactly one leader. A leader owns at most one group.
type Group struct {
	ID        uuid.UUID     `gorm:"primaryKey;type:uuid"`
	Name      string        `gorm:"size:120;not null"`
	Slug      string        `gorm:"size:140;uniqueIndex;not null"`
	LeaderID  uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null"`
	Leader    *User         `gorm:"foreignKey:LeaderID"`
	Members   []GroupMember `gorm:"foreignKey:GroupID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Group) TableName() string {
	return "groups"
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroupMember is one roster entry. UserID is the key, so a user sits on at
// most one roster.
type GroupMember struct {
	UserID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index"`
	User      *User     `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

func (GroupMember) TableName() string {
	return "group_members"
}

// Tables lists every model in migration order.
func Tables() []any {
	return []any{
		&User{},
		&Group{},
		&GroupMember{},
		&Task{},
	}
}
