package dto

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// CreateTimesheetRequest payload.
type CreateTimesheetRequest struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

// UpsertEntryRequest payload. An empty id inserts a new entry.
type UpsertEntryRequest struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn     string `json:"check_in" validate:"required,datetime=15:04"`
	CheckOut    string `json:"check_out" validate:"required,datetime=15:04"`
	Description string `json:"description" validate:"max=1000"`
}

// ReviewTimesheetRequest payload. Reason is required for REJECTED.
type ReviewTimesheetRequest struct {
	Status domain.TimesheetStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Reason string                 `json:"reason" validate:"required_if=Status REJECTED,max=1000"`
}

// TimesheetEntryResponse represents one work session.
type TimesheetEntryResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

// TimesheetResponse represents a timesheet with its entries.
type TimesheetResponse struct {
	ID              string                   `json:"id"`
	EmployeeID      string                   `json:"employee_id"`
	EmployeeName    string                   `json:"employee_name"`
	Month           string                   `json:"month"`
	Status          domain.TimesheetStatus   `json:"status"`
	Entries         []TimesheetEntryResponse `json:"entries"`
	TotalHours      float64                  `json:"total_hours"`
	SubmittedAt     *time.Time               `json:"submitted_at,omitempty"`
	RejectionReason *string                  `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	ReviewedAt      *time.Time               `json:"reviewed_at,omitempty"`
}

// NewTimesheetResponse maps a domain timesheet.
func NewTimesheetResponse(t *domain.Timesheet) TimesheetResponse {
	entries := make([]TimesheetEntryResponse, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, TimesheetEntryResponse{
			ID:          e.ID,
			Date:        e.Date.Format(domain.DateLayout),
			CheckIn:     e.CheckIn,
			CheckOut:    e.CheckOut,
			Description: e.Description,
			Hours:       e.Hours,
		})
	}
	return TimesheetResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		EmployeeName:    t.EmployeeName,
		Month:           t.Month,
		Status:          t.Status,
		Entries:         entries,
		TotalHours:      t.TotalHours(),
		SubmittedAt:     t.SubmittedAt,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		ReviewedAt:      t.ReviewedAt,
	}
}

// NewTimesheetResponses maps a slice of timesheets.
func NewTimesheetResponses(sheets []domain.Timesheet) []TimesheetResponse {
	out := make([]TimesheetResponse, 0, len(sheets))
	for i := range sheets {
		out = append(out, NewTimesheetResponse(&sheets[i]))
	}
	return out
}
