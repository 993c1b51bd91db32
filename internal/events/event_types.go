package events

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventManagerJoinRequested EventType = "manager_join_requested"
	EventManagerJoinResponded EventType = "manager_join_responded"
	EventLeaveSubmitted       EventType = "leave_submitted"
	EventLeaveReviewed        EventType = "leave_reviewed"
	EventTimesheetSubmitted   EventType = "timesheet_submitted"
	EventTimesheetReviewed    EventType = "timesheet_reviewed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ManagerJoinRequestedPayload payload.
type ManagerJoinRequestedPayload struct {
	EmployeeID string `json:"employee_id"`
	ManagerID  string `json:"manager_id"`
}

// ManagerJoinRespondedPayload payload.
type ManagerJoinRespondedPayload struct {
	EmployeeID string                       `json:"employee_id"`
	ManagerID  string                       `json:"manager_id"`
	Status     domain.ManagerApprovalStatus `json:"status"`
}

// LeaveSubmittedPayload payload.
type LeaveSubmittedPayload struct {
	EmployeeID string           `json:"employee_id"`
	ManagerID  string           `json:"manager_id"`
	Type       domain.LeaveType `json:"type"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Days       int              `json:"days"`
}

// LeaveReviewedPayload payload.
type LeaveReviewedPayload struct {
	EmployeeID string             `json:"employee_id"`
	Status     domain.LeaveStatus `json:"status"`
}

// TimesheetSubmittedPayload payload.
type TimesheetSubmittedPayload struct {
	EmployeeID string  `json:"employee_id"`
	Month      string  `json:"month"`
	TotalHours float64 `json:"total_hours"`
}

// TimesheetReviewedPayload payload.
type TimesheetReviewedPayload struct {
	EmployeeID string                 `json:"employee_id"`
	Month      string                 `json:"month"`
	Status     domain.TimesheetStatus `json:"status"`
	Reason     string                 `json:"reason,omitempty"`
}
