package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

func TestDirectoryService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.directory.Login(ctx, " Bob@Company.com ")
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
	assert.Equal(t, domain.RoleManager, user.Role)

	_, err = env.directory.Login(ctx, "ghost@company.com")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	_, err = env.directory.Login(ctx, "  ")
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.CodeOf(err))
}

func TestDirectoryService_JoinHandshake(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.directory.RequestManager(ctx, "u1", "u5")
	require.NoError(t, err)
	assert.Equal(t, "u5", *user.ManagerID)
	assert.Equal(t, domain.ManagerApprovalPending, user.ManagerApprovalStatus)

	pending, err := env.directory.GetJoinRequests(ctx, "u5")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "u1", pending[0].ID)

	size, err := env.directory.GetTeamSize(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, size, "alice left bob's approved team when she asked for sarah")

	user, err = env.directory.RespondToJoinRequest(ctx, "u1", true)
	require.NoError(t, err)
	assert.Equal(t, domain.ManagerApprovalApproved, user.ManagerApprovalStatus)

	team, err := env.directory.ListTeam(ctx, "u5")
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "u1", team[0].ID)

	_, err = env.directory.RespondToJoinRequest(ctx, "u1", true)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))

	assert.Equal(t, []events.EventType{events.EventManagerJoinRequested, events.EventManagerJoinResponded}, env.eventTypes())
}

func TestDirectoryService_RejectClearsManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.directory.RequestManager(ctx, "u4", "u5")
	require.NoError(t, err)

	user, err := env.directory.RespondToJoinRequest(ctx, "u4", false)
	require.NoError(t, err)
	assert.Nil(t, user.ManagerID)
	assert.Equal(t, domain.ManagerApprovalRejected, user.ManagerApprovalStatus)

	// a rejected employee may ask again
	user, err = env.directory.RequestManager(ctx, "u4", "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.ManagerApprovalPending, user.ManagerApprovalStatus)
}

func TestDirectoryService_RequestManagerValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name       string
		employeeID string
		managerID  string
		code       string
	}{
		{"unknown employee", "nobody", "u2", apperrors.CodeNotFound},
		{"unknown manager", "u1", "nobody", apperrors.CodeNotFound},
		{"target is not a manager", "u1", "u3", apperrors.CodeValidationFailed},
		{"requester is not an employee", "u3", "u2", apperrors.CodeInvalidState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.directory.RequestManager(ctx, tc.employeeID, tc.managerID)
			assert.Equal(t, tc.code, apperrors.CodeOf(err))
		})
	}

	_, err := env.directory.RespondToJoinRequest(ctx, "nobody", true)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestDirectoryService_SeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inserted, err := env.directory.Seed(ctx, DefaultUsers())
	require.NoError(t, err)
	assert.Zero(t, inserted)

	managers, err := env.directory.ListManagers(ctx)
	require.NoError(t, err)
	require.Len(t, managers, 2)
	assert.Equal(t, "u2", managers[0].ID)
	assert.Equal(t, "u5", managers[1].ID)
}

func TestDefaultUsers_ManagersPrecedeReports(t *testing.T) {
	users := DefaultUsers()
	seen := map[string]bool{}
	for _, u := range users {
		if u.ManagerID != nil {
			assert.True(t, seen[*u.ManagerID], "%s listed before manager %s", u.ID, *u.ManagerID)
		}
		seen[u.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestSeedOrder_PlacesManagersFirst(t *testing.T) {
	users := DefaultUsers()
	reversed := make([]domain.User, 0, len(users))
	for i := len(users) - 1; i >= 0; i-- {
		reversed = append(reversed, users[i])
	}

	ordered := seedOrder(reversed)
	require.Len(t, ordered, len(users))
	ids := make([]string, 0, len(ordered))
	for _, u := range ordered {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"u5", "u3", "u2", "u4", "u1"}, ids)

	outside := "external"
	loop := []domain.User{{ID: "a", ManagerID: &outside}, {ID: "b"}}
	assert.Len(t, seedOrder(loop), 2)
}
