package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MonthLayout is the year-month key format.
const MonthLayout = "2006-01"

// TimesheetStatus enumerates lifecycle states for timesheets.
type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "DRAFT"
	TimesheetStatusSubmitted TimesheetStatus = "SUBMITTED"
	TimesheetStatusApproved  TimesheetStatus = "APPROVED"
	TimesheetStatusRejected  TimesheetStatus = "REJECTED"
)

// Valid reports whether s is a known timesheet status.
func (s TimesheetStatus) Valid() bool {
	switch s {
	case TimesheetStatusDraft, TimesheetStatusSubmitted, TimesheetStatusApproved, TimesheetStatusRejected:
		return true
	default:
		return false
	}
}

// IsReviewOutcome reports whether s can be the result of a manager review.
func (s TimesheetStatus) IsReviewOutcome() bool {
	return s == TimesheetStatusApproved || s == TimesheetStatusRejected
}

// TimesheetEntry is one dated work session.
type TimesheetEntry struct {
	ID          string
	Date        time.Time
	CheckIn     string
	CheckOut    string
	Description string
	Hours       float64
}

// Timesheet holds one employee's sessions for one month.
type Timesheet struct {
	ID              string
	EmployeeID      string
	EmployeeName    string
	Month           string
	Status          TimesheetStatus
	Entries         []TimesheetEntry
	SubmittedAt     *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	ReviewedAt      *time.Time
}

// ContainsDate reports whether d falls inside the timesheet month.
func (t *Timesheet) ContainsDate(d time.Time) bool {
	return d.Format(MonthLayout) == t.Month
}

// TotalHours sums the hours of every entry.
func (t *Timesheet) TotalHours() float64 {
	var total float64
	for _, e := range t.Entries {
		total += e.Hours
	}
	return RoundHours(total)
}

// UpsertEntry replaces the entry with the same id or appends it. It reports whether
// the entry was inserted.
func (t *Timesheet) UpsertEntry(entry TimesheetEntry) bool {
	for i := range t.Entries {
		if t.Entries[i].ID == entry.ID {
			t.Entries[i] = entry
			return false
		}
	}
	t.Entries = append(t.Entries, entry)
	return true
}

// RemoveEntry drops the entry with the given id and reports whether it existed.
func (t *Timesheet) RemoveEntry(entryID string) bool {
	for i := range t.Entries {
		if t.Entries[i].ID == entryID {
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the timesheet.
func (t Timesheet) Clone() Timesheet {
	if t.Entries != nil {
		entries := make([]TimesheetEntry, len(t.Entries))
		copy(entries, t.Entries)
		t.Entries = entries
	}
	if t.SubmittedAt != nil {
		v := *t.SubmittedAt
		t.SubmittedAt = &v
	}
	if t.RejectionReason != nil {
		v := *t.RejectionReason
		t.RejectionReason = &v
	}
	if t.ReviewedAt != nil {
		v := *t.ReviewedAt
		t.ReviewedAt = &v
	}
	return t
}

// ParseMonth validates a YYYY-MM key and returns the first day of that month.
func ParseMonth(value string) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, value, time.UTC)
}

// ParseClock parses an HH:MM time of day into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return h*60 + m, nil
}

// ComputeHours returns the worked hours between two same-day clock times. Unparseable
// or reversed times yield 0.
func ComputeHours(checkIn, checkOut string) float64 {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0
	}
	diff := out - in
	if diff <= 0 {
		return 0
	}
	return RoundHours(float64(diff) / 60)
}

// RoundHours rounds to two decimals, the precision hours are reported with.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
