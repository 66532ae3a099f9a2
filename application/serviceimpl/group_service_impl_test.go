package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"attendance-tasks/domain/dto"
	"attendance-tasks/domain/models"
	"attendance-tasks/infrastructure/postgres"
	"attendance-tasks/pkg/apperror"
	"attendance-tasks/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return c.err
}

func TestGroupService_CreateGroup(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	inv := &countingInvalidator{}
	userRepo := postgres.NewUserRepository(db)
	svc := NewGroupService(postgres.NewGroupRepository(db), userRepo, inv)

	coordinator := testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	lena := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)

	group, err := svc.CreateGroup(ctx, coordinator.ID, &dto.CreateGroupRequest{Name: " Front Desk ", LeaderID: lena.ID})
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", group.Name)
	assert.Equal(t, "front-desk", group.Slug)
	require.NotNil(t, group.Leader)
	assert.Equal(t, lena.ID, group.Leader.ID)
	assert.Equal(t, 1, inv.calls)

	stored, err := userRepo.GetByID(ctx, lena.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsLeader)

	tests := []struct {
		name   string
		caller uuid.UUID
		req    dto.CreateGroupRequest
		kind   error
	}{
		{"intern caller", member.ID, dto.CreateGroupRequest{Name: "Night Shift", LeaderID: member.ID}, apperror.ErrForbidden},
		{"unknown caller", uuid.New(), dto.CreateGroupRequest{Name: "Night Shift", LeaderID: member.ID}, apperror.ErrForbidden},
		{"unknown leader", coordinator.ID, dto.CreateGroupRequest{Name: "Night Shift", LeaderID: uuid.New()}, apperror.ErrBadRequest},
		{"leader already leads", coordinator.ID, dto.CreateGroupRequest{Name: "Night Shift", LeaderID: lena.ID}, apperror.ErrInvalidState},
		{"duplicate name", coordinator.ID, dto.CreateGroupRequest{Name: "front desk", LeaderID: member.ID}, apperror.ErrInvalidState},
		{"blank name", coordinator.ID, dto.CreateGroupRequest{Name: "   ", LeaderID: member.ID}, apperror.ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGroup(ctx, tt.caller, &tt.req)
			assertKind(t, err, tt.kind)
		})
	}
	assert.Equal(t, 1, inv.calls)
}

func TestGroupService_Members(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	inv := &countingInvalidator{err: errors.New("cache offline")}
	svc := NewGroupService(postgres.NewGroupRepository(db), postgres.NewUserRepository(db), inv)

	coordinator := testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	lena := testdb.User(t, db, "Lena Leader", models.RoleIntern)
	member := testdb.User(t, db, "Max Member", models.RoleIntern)
	olga := testdb.User(t, db, "Olga Other", models.RoleIntern)
	group := testdb.Group(t, db, "Front Desk", lena)
	other := testdb.Group(t, db, "Back Office", olga)

	updated, err := svc.AddMember(ctx, coordinator.ID, group.ID, &dto.AddMemberRequest{UserID: member.ID})
	require.NoError(t, err, "invalidation failures are not fatal")
	require.Len(t, updated.Members, 1)
	assert.Equal(t, member.ID, updated.Members[0].UserID)

	_, err = svc.AddMember(ctx, coordinator.ID, other.ID, &dto.AddMemberRequest{UserID: member.ID})
	assertKind(t, err, apperror.ErrInvalidState)

	_, err = svc.AddMember(ctx, coordinator.ID, group.ID, &dto.AddMemberRequest{UserID: lena.ID})
	assertKind(t, err, apperror.ErrBadRequest)

	_, err = svc.AddMember(ctx, coordinator.ID, uuid.New(), &dto.AddMemberRequest{UserID: member.ID})
	assertKind(t, err, apperror.ErrNotFound)

	_, err = svc.AddMember(ctx, lena.ID, group.ID, &dto.AddMemberRequest{UserID: olga.ID})
	assertKind(t, err, apperror.ErrForbidden)

	updated, err = svc.RemoveMember(ctx, coordinator.ID, group.ID, member.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Members)

	_, err = svc.RemoveMember(ctx, coordinator.ID, group.ID, member.ID)
	assertKind(t, err, apperror.ErrNotFound)

	assert.Equal(t, 2, inv.calls)
}

func TestGroupService_NilInvalidator(t *testing.T) {
	db := testdb.New(t)
	svc := NewGroupService(postgres.NewGroupRepository(db), postgres.NewUserRepository(db), nil)

	coordinator := testdb.User(t, db, "Cora Coordinator", models.RoleCoordinator)
	lena := testdb.User(t, db, "Lena Leader", models.RoleIntern)

	_, err := svc.CreateGroup(context.Background(), coordinator.ID, &dto.CreateGroupRequest{Name: "Front Desk", LeaderID: lena.ID})
	require.NoError(t, err)

	groups, err := svc.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "front-desk", groups[0].Slug)
}
