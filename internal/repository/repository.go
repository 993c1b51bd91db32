package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/hr-service/internal/domain"
)

var (
	// ErrNotFound is returned when a record id or key is unknown to the store.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a create collides with an existing id or unique key.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidReference is returned when a record points at a row that does not exist.
	ErrInvalidReference = errors.New("record references an unknown row")
)

// UserFilter narrows directory listings. Zero values match everything.
type UserFilter struct {
	Role           *domain.Role
	ManagerID      *string
	ApprovalStatus *domain.ManagerApprovalStatus
}

// Matches reports whether u passes the filter.
func (f UserFilter) Matches(u *domain.User) bool {
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	if f.ManagerID != nil && (u.ManagerID == nil || *u.ManagerID != *f.ManagerID) {
		return false
	}
	if f.ApprovalStatus != nil && u.ManagerApprovalStatus != *f.ApprovalStatus {
		return false
	}
	return true
}

// LeaveFilter narrows leave request listings.
type LeaveFilter struct {
	EmployeeID *string
	ManagerID  *string
	Statuses   []domain.LeaveStatus
}

// Matches reports whether l passes the filter.
func (f LeaveFilter) Matches(l *domain.LeaveRequest) bool {
	if f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.ManagerID != nil && l.ManagerID != *f.ManagerID {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if l.Status == s {
				return true
			}
		}
		return false
	}
	return true
}

// TimesheetFilter narrows timesheet listings. An empty non-nil EmployeeIDs matches nothing.
type TimesheetFilter struct {
	EmployeeID  *string
	EmployeeIDs []string
	Status      *domain.TimesheetStatus
	Month       *string
}

// Matches reports whether t passes the filter.
func (f TimesheetFilter) Matches(t *domain.Timesheet) bool {
	if f.EmployeeID != nil && t.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.EmployeeIDs != nil {
		found := false
		for _, id := range f.EmployeeIDs {
			if t.EmployeeID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Month != nil && t.Month != *f.Month {
		return false
	}
	return true
}

// UserRepository defines persistence access for directory records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
}

// LeaveRepository encapsulates leave request persistence.
type LeaveRepository interface {
	Create(ctx context.Context, req *domain.LeaveRequest) error
	Update(ctx context.Context, req *domain.LeaveRequest) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error)
}

// TimesheetRepository encapsulates timesheet persistence. Entries are stored with
// their timesheet.
type TimesheetRepository interface {
	Create(ctx context.Context, ts *domain.Timesheet) error
	Update(ctx context.Context, ts *domain.Timesheet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	List(ctx context.Context, filter TimesheetFilter) ([]domain.Timesheet, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Users      UserRepository
	Leaves     LeaveRepository
	Timesheets TimesheetRepository
}
