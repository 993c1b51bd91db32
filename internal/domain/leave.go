package domain

import (
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// LeaveType enumerates leave categories.
type LeaveType string

const (
	LeaveTypeAnnual   LeaveType = "ANNUAL"
	LeaveTypeSick     LeaveType = "SICK"
	LeaveTypePersonal LeaveType = "PERSONAL"
)

// LeaveTypes lists every leave type in display order.
var LeaveTypes = []LeaveType{LeaveTypeAnnual, LeaveTypeSick, LeaveTypePersonal}

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypePersonal:
		return true
	default:
		return false
	}
}

// Allotment is the fixed number of days granted per year.
func (t LeaveType) Allotment() int {
	switch t {
	case LeaveTypeAnnual:
		return 20
	case LeaveTypeSick:
		return 10
	case LeaveTypePersonal:
		return 5
	default:
		return 0
	}
}

// Label is the human readable name.
func (t LeaveType) Label() string {
	switch t {
	case LeaveTypeAnnual:
		return "Annual Leave"
	case LeaveTypeSick:
		return "Sick Leave"
	case LeaveTypePersonal:
		return "Personal Leave"
	default:
		return string(t)
	}
}

// LeaveStatus enumerates lifecycle states for leave requests.
type LeaveStatus string

const (
	LeaveStatusSubmitted LeaveStatus = "SUBMITTED"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
)

// Valid reports whether s is a known leave status.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusSubmitted, LeaveStatusApproved, LeaveStatusRejected:
		return true
	default:
		return false
	}
}

// IsReviewOutcome reports whether s can be the result of a manager review.
func (s LeaveStatus) IsReviewOutcome() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// LeaveRequest is a request for time off routed to the employee's manager.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	Status       LeaveStatus
	Reason       string
	ManagerID    string
	SubmittedAt  time.Time
	ReviewedAt   *time.Time
}

// Overlaps reports whether the request's range intersects [start, end] inclusively.
func (l *LeaveRequest) Overlaps(start, end time.Time) bool {
	return RangesOverlap(l.StartDate, l.EndDate, start, end)
}

// BlocksOverlap reports whether the request still reserves its dates.
func (l *LeaveRequest) BlocksOverlap() bool {
	return l.Status != LeaveStatusRejected
}

// Clone returns a deep copy of the request.
func (l LeaveRequest) Clone() LeaveRequest {
	if l.ReviewedAt != nil {
		t := *l.ReviewedAt
		l.ReviewedAt = &t
	}
	return l
}

// LeaveBalances maps each leave type to its remaining days.
type LeaveBalances map[LeaveType]int

// NewLeaveBalances starts every type at its allotment.
func NewLeaveBalances() LeaveBalances {
	balances := make(LeaveBalances, len(LeaveTypes))
	for _, t := range LeaveTypes {
		balances[t] = t.Allotment()
	}
	return balances
}

// DeriveBalances subtracts the approved requests from the allotments.
func DeriveBalances(requests []LeaveRequest) LeaveBalances {
	balances := NewLeaveBalances()
	for _, req := range requests {
		if req.Status != LeaveStatusApproved {
			continue
		}
		if _, ok := balances[req.Type]; ok {
			balances[req.Type] -= req.Days
		}
	}
	return balances
}

// RangesOverlap is the inclusive interval intersection test.
func RangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return !start1.After(end2) && !end1.Before(start2)
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// InclusiveDays counts calendar days in [start, end], both ends included.
func InclusiveDays(start, end time.Time) int {
	s := NormalizeDate(start)
	e := NormalizeDate(end)
	return int(e.Sub(s).Hours()/24) + 1
}
