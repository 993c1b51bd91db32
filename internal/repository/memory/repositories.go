package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

type userRepository struct {
	// guards the email uniqueness check together with the insert
	mu    sync.Mutex
	table *table[domain.User]
}

// NewUserRepository returns an in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{table: newTable(domain.User.Clone)}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.table.scan(func(u *domain.User) bool { return strings.EqualFold(u.Email, user.Email) })) > 0 {
		return repository.ErrDuplicate
	}
	return r.table.insert(user.ID, *user)
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	return r.table.replace(user.ID, *user)
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, err := r.table.get(id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	matches := r.table.scan(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	return &matches[0], nil
}

func (r *userRepository) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return r.table.scan(filter.Matches), nil
}

type leaveRepository struct {
	table *table[domain.LeaveRequest]
}

// NewLeaveRepository returns an in-memory leave repository.
func NewLeaveRepository() repository.LeaveRepository {
	return &leaveRepository{table: newTable(domain.LeaveRequest.Clone)}
}

func (r *leaveRepository) Create(_ context.Context, req *domain.LeaveRequest) error {
	return r.table.insert(req.ID, *req)
}

func (r *leaveRepository) Update(_ context.Context, req *domain.LeaveRequest) error {
	return r.table.replace(req.ID, *req)
}

func (r *leaveRepository) Delete(_ context.Context, id string) error {
	return r.table.remove(id)
}

func (r *leaveRepository) GetByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	req, err := r.table.get(id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRepository) List(_ context.Context, filter repository.LeaveFilter) ([]domain.LeaveRequest, error) {
	return r.table.scan(filter.Matches), nil
}

type timesheetRepository struct {
	table *table[domain.Timesheet]
}

// NewTimesheetRepository returns an in-memory timesheet repository.
func NewTimesheetRepository() repository.TimesheetRepository {
	return &timesheetRepository{table: newTable(domain.Timesheet.Clone)}
}

func (r *timesheetRepository) Create(_ context.Context, ts *domain.Timesheet) error {
	return r.table.insert(ts.ID, *ts)
}

func (r *timesheetRepository) Update(_ context.Context, ts *domain.Timesheet) error {
	return r.table.replace(ts.ID, *ts)
}

func (r *timesheetRepository) Delete(_ context.Context, id string) error {
	return r.table.remove(id)
}

func (r *timesheetRepository) GetByID(_ context.Context, id string) (*domain.Timesheet, error) {
	ts, err := r.table.get(id)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *timesheetRepository) List(_ context.Context, filter repository.TimesheetFilter) ([]domain.Timesheet, error) {
	return r.table.scan(filter.Matches), nil
}
