package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	"github.com/spec-kit/hr-service/internal/repository/memory"
)

type testEnv struct {
	store      repository.Store
	directory  *DirectoryService
	leaves     *LeaveService
	timesheets *TimesheetService
	reports    *ReportService
	mu         sync.Mutex
	published  []events.Event
	clock      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store: memory.NewStore(),
		clock: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time {
		env.mu.Lock()
		defer env.mu.Unlock()
		env.clock = env.clock.Add(time.Second)
		return env.clock
	}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	for _, et := range []events.EventType{
		events.EventManagerJoinRequested,
		events.EventManagerJoinResponded,
		events.EventLeaveSubmitted,
		events.EventLeaveReviewed,
		events.EventTimesheetSubmitted,
		events.EventTimesheetReviewed,
	} {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			env.mu.Lock()
			env.published = append(env.published, e)
			env.mu.Unlock()
			return nil
		})
	}

	locker := NewKeyedLocker()
	logger := zap.NewNop()
	env.directory = NewDirectoryService(DirectoryDependencies{
		UserRepo: env.store.Users, Dispatcher: dispatcher, Locker: locker, Logger: logger, Clock: clock,
	})
	env.leaves = NewLeaveService(LeaveDependencies{
		LeaveRepo: env.store.Leaves, UserRepo: env.store.Users, Dispatcher: dispatcher, Locker: locker, Logger: logger, Clock: clock,
	})
	env.timesheets = NewTimesheetService(TimesheetDependencies{
		TimesheetRepo: env.store.Timesheets, UserRepo: env.store.Users, Dispatcher: dispatcher, Locker: locker, Logger: logger, Clock: clock,
	})
	env.reports = NewReportService(ReportDependencies{
		UserRepo: env.store.Users, LeaveRepo: env.store.Leaves, TimesheetRepo: env.store.Timesheets, Logger: logger,
	})

	inserted, err := env.directory.Seed(context.Background(), DefaultUsers())
	require.NoError(t, err)
	require.Equal(t, 5, inserted)
	return env
}

func (e *testEnv) eventTypes() []events.EventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]events.EventType, 0, len(e.published))
	for _, ev := range e.published {
		out = append(out, ev.Type)
	}
	return out
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
