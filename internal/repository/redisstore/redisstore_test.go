package redisstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

const testPrefix = "hr:"

func encode(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func sampleUser() domain.User {
	manager := "u2"
	created := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
	return domain.User{
		ID:                    "u1",
		Name:                  "Alice Employee",
		Email:                 "alice@company.com",
		Role:                  domain.RoleEmployee,
		ManagerID:             &manager,
		ManagerApprovalStatus: domain.ManagerApprovalApproved,
		CreatedAt:             created,
		UpdatedAt:             created,
	}
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the record under its id", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewUserRepository(client, testPrefix)
		user := sampleUser()

		mock.ExpectHGetAll("hr:users").SetVal(map[string]string{})
		mock.ExpectHSetNX("hr:users", "u1", encode(t, repository.NewUserRecord(&user))).SetVal(true)

		require.NoError(t, repo.Create(ctx, &user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewUserRepository(client, testPrefix)
		user := sampleUser()

		mock.ExpectHGetAll("hr:users").SetVal(map[string]string{})
		mock.ExpectHSetNX("hr:users", "u1", encode(t, repository.NewUserRecord(&user))).SetVal(false)

		assert.ErrorIs(t, repo.Create(ctx, &user), repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewUserRepository(client, testPrefix)
		existing := sampleUser()
		user := sampleUser()
		user.ID = "u9"
		user.Email = "ALICE@company.com"

		mock.ExpectHGetAll("hr:users").SetVal(map[string]string{
			"u1": encode(t, repository.NewUserRecord(&existing)),
		})

		assert.ErrorIs(t, repo.Create(ctx, &user), repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ListFiltersAndOrders(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewUserRepository(client, testPrefix)

	alice := sampleUser()
	david := sampleUser()
	david.ID = "u4"
	david.Email = "david@company.com"
	david.CreatedAt = alice.CreatedAt.Add(-time.Hour)
	bob := domain.User{ID: "u2", Email: "bob@company.com", Role: domain.RoleManager, ManagerApprovalStatus: domain.ManagerApprovalNone}

	mock.ExpectHGetAll("hr:users").SetVal(map[string]string{
		"u1": encode(t, repository.NewUserRecord(&alice)),
		"u4": encode(t, repository.NewUserRecord(&david)),
		"u2": encode(t, repository.NewUserRecord(&bob)),
	})

	managerID := "u2"
	users, err := repo.List(context.Background(), repository.UserFilter{ManagerID: &managerID})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u4", users[0].ID)
	assert.Equal(t, "u1", users[1].ID)
	assert.Equal(t, "u2", *users[1].ManagerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewLeaveRepository(client, testPrefix)

		mock.ExpectHGet("hr:leaves", "l1").RedisNil()

		_, err := repo.GetByID(ctx, "l1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("decodes dates", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := NewLeaveRepository(client, testPrefix)
		start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		req := domain.LeaveRequest{
			ID:          "l1",
			EmployeeID:  "u1",
			Type:        domain.LeaveTypePersonal,
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 1),
			Days:        2,
			Status:      domain.LeaveStatusSubmitted,
			ManagerID:   "u2",
			SubmittedAt: start,
		}

		mock.ExpectHGet("hr:leaves", "l1").SetVal(encode(t, repository.NewLeaveRecord(&req)))

		got, err := repo.GetByID(ctx, "l1")
		require.NoError(t, err)
		assert.True(t, got.StartDate.Equal(req.StartDate))
		assert.True(t, got.EndDate.Equal(req.EndDate))
		assert.Equal(t, domain.LeaveTypePersonal, got.Type)
		assert.Equal(t, 2, got.Days)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	repo := NewLeaveRepository(client, testPrefix)

	mock.ExpectHExists("hr:leaves", "l1").SetVal(false)
	mock.ExpectHDel("hr:leaves", "l1").SetVal(0)

	assert.ErrorIs(t, repo.Update(ctx, &domain.LeaveRequest{ID: "l1"}), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "l1"), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepository_Update(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTimesheetRepository(client, testPrefix)
	ts := domain.Timesheet{
		ID:         "t1",
		EmployeeID: "u1",
		Month:      "2025-06",
		Status:     domain.TimesheetStatusDraft,
		Entries: []domain.TimesheetEntry{{
			ID:       "e1",
			Date:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
			CheckIn:  "09:00",
			CheckOut: "17:30",
			Hours:    8.5,
		}},
	}

	mock.ExpectHExists("hr:timesheets", "t1").SetVal(true)
	mock.ExpectHSet("hr:timesheets", "t1", encode(t, repository.NewTimesheetRecord(&ts))).SetVal(0)

	require.NoError(t, repo.Update(context.Background(), &ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimesheetRepository_ListByEmployees(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewTimesheetRepository(client, testPrefix)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mine := domain.Timesheet{ID: "t1", EmployeeID: "u1", Month: "2025-06", Status: domain.TimesheetStatusSubmitted, CreatedAt: base}
	other := domain.Timesheet{ID: "t2", EmployeeID: "u3", Month: "2025-06", Status: domain.TimesheetStatusSubmitted, CreatedAt: base}
	draft := domain.Timesheet{ID: "t3", EmployeeID: "u4", Month: "2025-05", Status: domain.TimesheetStatusDraft, CreatedAt: base}

	mock.ExpectHGetAll("hr:timesheets").SetVal(map[string]string{
		"t1": encode(t, repository.NewTimesheetRecord(&mine)),
		"t2": encode(t, repository.NewTimesheetRecord(&other)),
		"t3": encode(t, repository.NewTimesheetRecord(&draft)),
	})

	status := domain.TimesheetStatusSubmitted
	sheets, err := repo.List(context.Background(), repository.TimesheetFilter{
		EmployeeIDs: []string{"u1", "u4"},
		Status:      &status,
	})
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "t1", sheets[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
