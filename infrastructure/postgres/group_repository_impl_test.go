package postgres

import (
	"context"
	"testing"

	"attendance-tasks/domain/models"
	"attendance-tasks/domain/repositories"
	"attendance-tasks/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_CreateFlagsLeader(t *testing.T) {
	db := testdb.New(t)
	groups := NewGroupRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	leader := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	group := &models.Group{Name: "Front Desk", Slug: "front-desk", LeaderID: leader.ID}
	require.NoError(t, groups.Create(ctx, group))
	assert.NotEqual(t, uuid.Nil, group.ID)

	reloaded, err := users.GetByID(ctx, leader.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsLeader)

	byLeader, err := groups.GetByLeaderID(ctx, leader.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, byLeader.ID)
	require.NotNil(t, byLeader.Leader)
	assert.Equal(t, "Lena Leader", byLeader.Leader.FullName)

	bySlug, err := groups.GetBySlug(ctx, "front-desk")
	require.NoError(t, err)
	assert.Equal(t, group.ID, bySlug.ID)
}

func TestGroupRepository_Members(t *testing.T) {
	db := testdb.New(t)
	groups := NewGroupRepository(db)
	ctx := context.Background()

	leader := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	alice := testdb.User(t, db, "Alice", models.RoleIntern)
	bob := testdb.User(t, db, "Bob", models.RoleIntern)
	group := testdb.Group(t, db, "Front Desk", leader, alice)

	require.NoError(t, groups.AddMember(ctx, group.ID, bob.ID))
	// a user sits on one roster only
	assert.Error(t, groups.AddMember(ctx, group.ID, bob.ID))

	ids, err := groups.ListMemberIDs(ctx, []uuid.UUID{group.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{alice.ID, bob.ID}, ids)

	loaded, err := groups.GetByID(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Members, 2)
	assert.NotNil(t, loaded.Members[0].User)

	membership, err := groups.GetMembership(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, membership.GroupID)

	require.NoError(t, groups.RemoveMember(ctx, group.ID, bob.ID))
	assert.ErrorIs(t, groups.RemoveMember(ctx, group.ID, bob.ID), repositories.ErrNotFound)

	_, err = groups.GetMembership(ctx, bob.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	empty, err := groups.ListMemberIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepository_ListByRole(t *testing.T) {
	db := testdb.New(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	testdb.User(t, db, "Ivan Intern", models.RoleIntern)
	testdb.User(t, db, "Alice Intern", models.RoleIntern)

	interns, err := users.List(ctx, models.RoleIntern)
	require.NoError(t, err)
	require.Len(t, interns, 2)
	assert.Equal(t, "Alice Intern", interns[0].FullName)

	everyone, err := users.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, everyone, 3)

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
