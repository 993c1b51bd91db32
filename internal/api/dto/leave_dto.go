package dto

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// CreateLeaveRequest payload. Days may be omitted and is then derived from the dates.
type CreateLeaveRequest struct {
	Type      domain.LeaveType `json:"type" validate:"required,oneof=ANNUAL SICK PERSONAL"`
	StartDate string           `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string           `json:"end_date" validate:"required,datetime=2006-01-02"`
	Days      int              `json:"days" validate:"gte=0"`
	Reason    string           `json:"reason" validate:"max=1000"`
}

// UpdateLeaveRequest payload; absent fields are left unchanged.
type UpdateLeaveRequest struct {
	Type      *domain.LeaveType `json:"type" validate:"omitempty,oneof=ANNUAL SICK PERSONAL"`
	StartDate *string           `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string           `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Days      *int              `json:"days" validate:"omitempty,gt=0"`
	Reason    *string           `json:"reason" validate:"omitempty,max=1000"`
}

// ReviewLeaveRequest payload.
type ReviewLeaveRequest struct {
	Status domain.LeaveStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// LeaveRequestResponse represents a leave request.
type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeName string             `json:"employee_name"`
	Type         domain.LeaveType   `json:"type"`
	TypeLabel    string             `json:"type_label"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Days         int                `json:"days"`
	Status       domain.LeaveStatus `json:"status"`
	Reason       string             `json:"reason"`
	ManagerID    string             `json:"manager_id"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty"`
}

// LeaveBalanceResponse reports one leave type's balance.
type LeaveBalanceResponse struct {
	Type      domain.LeaveType `json:"type"`
	Label     string           `json:"label"`
	Allotment int              `json:"allotment"`
	Remaining int              `json:"remaining"`
}

// NewLeaveRequestResponse maps a domain leave request.
func NewLeaveRequestResponse(l *domain.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Type:         l.Type,
		TypeLabel:    l.Type.Label(),
		StartDate:    l.StartDate.Format(domain.DateLayout),
		EndDate:      l.EndDate.Format(domain.DateLayout),
		Days:         l.Days,
		Status:       l.Status,
		Reason:       l.Reason,
		ManagerID:    l.ManagerID,
		SubmittedAt:  l.SubmittedAt,
		ReviewedAt:   l.ReviewedAt,
	}
}

// NewLeaveRequestResponses maps a slice of leave requests.
func NewLeaveRequestResponses(requests []domain.LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, NewLeaveRequestResponse(&requests[i]))
	}
	return out
}

// NewLeaveBalanceResponses lists balances in leave type order.
func NewLeaveBalanceResponses(balances domain.LeaveBalances) []LeaveBalanceResponse {
	out := make([]LeaveBalanceResponse, 0, len(domain.LeaveTypes))
	for _, t := range domain.LeaveTypes {
		out = append(out, LeaveBalanceResponse{
			Type:      t,
			Label:     t.Label(),
			Allotment: t.Allotment(),
			Remaining: balances[t],
		})
	}
	return out
}
