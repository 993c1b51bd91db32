package repository

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EntryRecord is the stored shape of a timesheet entry, shared by the JSONB column and
// the redis backend.
type EntryRecord struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	CheckIn     string  `json:"checkIn"`
	CheckOut    string  `json:"checkOut"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

// UserRecord is the stored shape of a directory user.
type UserRecord struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	ManagerID             *string   `json:"managerId,omitempty"`
	ManagerApprovalStatus string    `json:"managerApprovalStatus"`
	AvatarURL             string    `json:"avatarUrl,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// LeaveRecord is the stored shape of a leave request.
type LeaveRecord struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Type         string     `json:"type"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	Days         int        `json:"days"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason"`
	ManagerID    string     `json:"managerId"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
}

// TimesheetRecord is the stored shape of a timesheet with its entries.
type TimesheetRecord struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employeeId"`
	EmployeeName    string        `json:"employeeName"`
	Month           string        `json:"month"`
	Status          string        `json:"status"`
	Entries         []EntryRecord `json:"entries"`
	SubmittedAt     *time.Time    `json:"submittedAt,omitempty"`
	RejectionReason *string       `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	ReviewedAt      *time.Time    `json:"reviewedAt,omitempty"`
}

// NewUserRecord converts a domain user.
func NewUserRecord(u *domain.User) UserRecord {
	c := u.Clone()
	return UserRecord{
		ID:                    c.ID,
		Name:                  c.Name,
		Email:                 c.Email,
		Role:                  string(c.Role),
		ManagerID:             c.ManagerID,
		ManagerApprovalStatus: string(c.ManagerApprovalStatus),
		AvatarURL:             c.AvatarURL,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// Domain converts the record back.
func (r UserRecord) Domain() domain.User {
	u := domain.User{
		ID:                    r.ID,
		Name:                  r.Name,
		Email:                 r.Email,
		Role:                  domain.Role(r.Role),
		ManagerID:             r.ManagerID,
		ManagerApprovalStatus: domain.ManagerApprovalStatus(r.ManagerApprovalStatus),
		AvatarURL:             r.AvatarURL,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	return u.Clone()
}

// NewLeaveRecord converts a domain leave request.
func NewLeaveRecord(l *domain.LeaveRequest) LeaveRecord {
	c := l.Clone()
	return LeaveRecord{
		ID:           c.ID,
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		Type:         string(c.Type),
		StartDate:    c.StartDate.Format(domain.DateLayout),
		EndDate:      c.EndDate.Format(domain.DateLayout),
		Days:         c.Days,
		Status:       string(c.Status),
		Reason:       c.Reason,
		ManagerID:    c.ManagerID,
		SubmittedAt:  c.SubmittedAt,
		ReviewedAt:   c.ReviewedAt,
	}
}

// Domain converts the record back.
func (r LeaveRecord) Domain() (domain.LeaveRequest, error) {
	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	end, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return domain.LeaveRequest{}, err
	}
	l := domain.LeaveRequest{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Type:         domain.LeaveType(r.Type),
		StartDate:    start,
		EndDate:      end,
		Days:         r.Days,
		Status:       domain.LeaveStatus(r.Status),
		Reason:       r.Reason,
		ManagerID:    r.ManagerID,
		SubmittedAt:  r.SubmittedAt,
		ReviewedAt:   r.ReviewedAt,
	}
	return l.Clone(), nil
}

// NewEntryRecords converts timesheet entries.
func NewEntryRecords(entries []domain.TimesheetEntry) []EntryRecord {
	out := make([]EntryRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryRecord{
			ID:          e.ID,
			Date:        e.Date.Format(domain.DateLayout),
			CheckIn:     e.CheckIn,
			CheckOut:    e.CheckOut,
			Description: e.Description,
			Hours:       e.Hours,
		})
	}
	return out
}

// DomainEntries converts stored entries back.
func DomainEntries(records []EntryRecord) ([]domain.TimesheetEntry, error) {
	out := make([]domain.TimesheetEntry, 0, len(records))
	for _, r := range records {
		date, err := domain.ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TimesheetEntry{
			ID:          r.ID,
			Date:        date,
			CheckIn:     r.CheckIn,
			CheckOut:    r.CheckOut,
			Description: r.Description,
			Hours:       r.Hours,
		})
	}
	return out, nil
}

// NewTimesheetRecord converts a domain timesheet.
func NewTimesheetRecord(t *domain.Timesheet) TimesheetRecord {
	c := t.Clone()
	return TimesheetRecord{
		ID:              c.ID,
		EmployeeID:      c.EmployeeID,
		EmployeeName:    c.EmployeeName,
		Month:           c.Month,
		Status:          string(c.Status),
		Entries:         NewEntryRecords(c.Entries),
		SubmittedAt:     c.SubmittedAt,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		ReviewedAt:      c.ReviewedAt,
	}
}

// Domain converts the record back.
func (r TimesheetRecord) Domain() (domain.Timesheet, error) {
	entries, err := DomainEntries(r.Entries)
	if err != nil {
		return domain.Timesheet{}, err
	}
	t := domain.Timesheet{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Month:           r.Month,
		Status:          domain.TimesheetStatus(r.Status),
		Entries:         entries,
		SubmittedAt:     r.SubmittedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		ReviewedAt:      r.ReviewedAt,
	}
	return t.Clone(), nil
}
