package serviceimpl

import (
	"context"
	"testing"

	"attendance-tasks/domain/models"
	"attendance-tasks/infrastructure/postgres"
	"attendance-tasks/pkg/apperror"
	"attendance-tasks/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetProfile(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewUserService(postgres.NewUserRepository(db), postgres.NewGroupRepository(db))

	coordinator := testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	lena := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)
	group := testdb.Group(t, db, "Front Desk", lena, member)

	t.Run("leader", func(t *testing.T) {
		profile, err := svc.GetProfile(ctx, lena.ID)
		require.NoError(t, err)
		require.NotNil(t, profile.LedGroup)
		assert.Equal(t, group.ID, profile.LedGroup.ID)
		assert.Nil(t, profile.MemberOf)
		assert.True(t, profile.IsLeader())
		assert.True(t, profile.CanAssign())
		assert.True(t, profile.CanManageGroup())
		assert.False(t, profile.CanCreateGlobal())
	})

	t.Run("member", func(t *testing.T) {
		profile, err := svc.GetProfile(ctx, member.ID)
		require.NoError(t, err)
		assert.Nil(t, profile.LedGroup)
		require.NotNil(t, profile.MemberOf)
		assert.Equal(t, "Front Desk", profile.MemberOf.Name)
		assert.False(t, profile.CanAssign())
		assert.False(t, profile.CanManageGroup())
	})

	t.Run("coordinator", func(t *testing.T) {
		profile, err := svc.GetProfile(ctx, coordinator.ID)
		require.NoError(t, err)
		assert.True(t, profile.CanCreateGlobal())
		assert.True(t, profile.CanAssign())
		assert.False(t, profile.CanManageGroup())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, uuid.New())
		assertKind(t, err, apperror.ErrNotFound)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	svc := NewUserService(postgres.NewUserRepository(db), postgres.NewGroupRepository(db))

	coordinator := testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	testdb.User(t, db, "Max Member", models.RoleIntern)
	pia := testdb.User(t, db, "Pia Peer", models.RoleIntern)

	interns, err := svc.ListUsers(ctx, coordinator.ID, models.RoleIntern)
	require.NoError(t, err)
	require.Len(t, interns, 2)
	assert.Equal(t, "Max Member", interns[0].FullName)

	everyone, err := svc.ListUsers(ctx, coordinator.ID, "")
	require.NoError(t, err)
	assert.Len(t, everyone, 3)

	_, err = svc.ListUsers(ctx, pia.ID, models.RoleIntern)
	assertKind(t, err, apperror.ErrForbidden)

	_, err = svc.ListUsers(ctx, coordinator.ID, models.UserRole("admin"))
	assertKind(t, err, apperror.ErrBadRequest)
}
