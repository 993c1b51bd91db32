package dto

import "github.com/spec-kit/hr-service/internal/service"

// EmployeeHoursResponse is one row of the HR hours summary.
type EmployeeHoursResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Timesheets   int     `json:"timesheets"`
	Hours        float64 `json:"hours"`
}

// HoursSummaryResponse aggregates approved hours.
type HoursSummaryResponse struct {
	Employees  []EmployeeHoursResponse `json:"employees"`
	Timesheets int                     `json:"timesheets"`
	TotalHours float64                 `json:"total_hours"`
}

// ManagerOverviewResponse carries manager dashboard counters.
type ManagerOverviewResponse struct {
	TeamSize             int     `json:"team_size"`
	PendingJoinRequests  int     `json:"pending_join_requests"`
	PendingLeaveRequests int     `json:"pending_leave_requests"`
	PendingTimesheets    int     `json:"pending_timesheets"`
	PendingHours         float64 `json:"pending_hours"`
}

// NewHoursSummaryResponse maps the service aggregate.
func NewHoursSummaryResponse(s *service.HoursSummary) HoursSummaryResponse {
	rows := make([]EmployeeHoursResponse, 0, len(s.Employees))
	for _, e := range s.Employees {
		rows = append(rows, EmployeeHoursResponse(e))
	}
	return HoursSummaryResponse{Employees: rows, Timesheets: s.Timesheets, TotalHours: s.TotalHours}
}

// NewManagerOverviewResponse maps the service counters.
func NewManagerOverviewResponse(o *service.ManagerOverview) ManagerOverviewResponse {
	return ManagerOverviewResponse(*o)
}
