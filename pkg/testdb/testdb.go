// Package testdb opens in-memory SQLite databases migrated with the
// service's models, plus seed helpers for users and groups.
package testdb

import (
	"context"
	"testing"
	"time"

	"attendance-tasks/domain/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a fresh database. Every connection to ":memory:" is its own
// database, so the pool is pinned to one connection.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.Tables()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// User inserts a profile with the given role.
func User(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Email:    slug.Make(name) + "@example.com",
		FullName: name,
		Role:     role,
	}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", name, err)
	}
	return user
}

// Group inserts a group led by leader with the given roster.
func Group(t *testing.T, db *gorm.DB, name string, leader *models.User, members ...*models.User) *models.Group {
	t.Helper()

	group := &models.Group{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug.Make(name),
		LeaderID: leader.ID,
	}
	if err := db.Omit("Leader", "Members").Create(group).Error; err != nil {
		t.Fatalf("failed to seed group %q: %v", name, err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", leader.ID).Update("is_leader", true).Error; err != nil {
		t.Fatalf("failed to flag leader: %v", err)
	}
	leader.IsLeader = true

	for _, m := range members {
		if err := db.Create(&models.GroupMember{UserID: m.ID, GroupID: group.ID}).Error; err != nil {
			t.Fatalf("failed to seed member %s: %v", m.FullName, err)
		}
	}
	return group
}
