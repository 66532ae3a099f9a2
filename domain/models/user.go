package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleIntern      UserRole = "intern"
	RoleCoordinator UserRole = "coordinator"
)

func (r UserRole) IsValid() bool {
	return r == RoleIntern || r == RoleCoordinator
}

// User is the profile row. Accounts are provisioned by the identity provider.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Email     string    `gorm:"uniqueIndex;not null"`
	FullName  string    `gorm:"size:255"`
	AvatarURL string    `gorm:"size:500"`
	Role      UserRole  `gorm:"size:20;not null;default:'intern'"`
	IsLeader  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsCoordinator() bool {
	return u.Role == RoleCoordinator
}

// Identity is what the directory knows about a caller.
type Identity struct {
	UserID   uuid.UUID
	Role     UserRole
	IsLeader bool
}

func (i Identity) IsCoordinator() bool {
	return i.Role == RoleCoordinator
}
