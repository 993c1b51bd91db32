package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// ReportService serves the read-only manager and HR views.
type ReportService struct {
	users      repository.UserRepository
	leaves     repository.LeaveRepository
	timesheets repository.TimesheetRepository
	logger     *zap.Logger
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	UserRepo      repository.UserRepository
	LeaveRepo     repository.LeaveRepository
	TimesheetRepo repository.TimesheetRepository
	Logger        *zap.Logger
}

// EmployeeHours aggregates approved hours for one employee.
type EmployeeHours struct {
	EmployeeID   string
	EmployeeName string
	Timesheets   int
	Hours        float64
}

// HoursSummary is the HR dashboard aggregate over approved timesheets.
type HoursSummary struct {
	Employees  []EmployeeHours
	Timesheets int
	TotalHours float64
}

// ManagerOverview carries the manager dashboard counters.
type ManagerOverview struct {
	TeamSize             int
	PendingJoinRequests  int
	PendingLeaveRequests int
	PendingTimesheets    int
	PendingHours         float64
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		users:      deps.UserRepo,
		leaves:     deps.LeaveRepo,
		timesheets: deps.TimesheetRepo,
		logger:     orLogger(deps.Logger, "report.service"),
	}
}

// PendingTimesheetsForManager returns SUBMITTED timesheets of the manager's approved team.
func (s *ReportService) PendingTimesheetsForManager(ctx context.Context, managerID string) ([]domain.Timesheet, error) {
	status := domain.TimesheetStatusSubmitted
	return s.teamTimesheets(ctx, managerID, &status)
}

// TeamTimesheets returns every timesheet of the manager's approved team.
func (s *ReportService) TeamTimesheets(ctx context.Context, managerID string) ([]domain.Timesheet, error) {
	return s.teamTimesheets(ctx, managerID, nil)
}

// ApprovedTimesheets returns every APPROVED timesheet.
func (s *ReportService) ApprovedTimesheets(ctx context.Context) ([]domain.Timesheet, error) {
	status := domain.TimesheetStatusApproved
	sheets, err := s.timesheets.List(ctx, repository.TimesheetFilter{Status: &status})
	return sheets, apperrors.MapError(err)
}

// HoursSummary totals approved hours per employee, in first-seen order.
func (s *ReportService) HoursSummary(ctx context.Context) (*HoursSummary, error) {
	sheets, err := s.ApprovedTimesheets(ctx)
	if err != nil {
		return nil, err
	}

	summary := &HoursSummary{Employees: []EmployeeHours{}}
	index := make(map[string]int)
	var total float64
	for i := range sheets {
		ts := &sheets[i]
		pos, ok := index[ts.EmployeeID]
		if !ok {
			pos = len(summary.Employees)
			index[ts.EmployeeID] = pos
			summary.Employees = append(summary.Employees, EmployeeHours{EmployeeID: ts.EmployeeID, EmployeeName: ts.EmployeeName})
		}
		hours := ts.TotalHours()
		summary.Employees[pos].Timesheets++
		summary.Employees[pos].Hours = domain.RoundHours(summary.Employees[pos].Hours + hours)
		total += hours
	}
	summary.Timesheets = len(sheets)
	summary.TotalHours = domain.RoundHours(total)
	return summary, nil
}

// ManagerOverview gathers the counters shown on a manager's dashboard.
func (s *ReportService) ManagerOverview(ctx context.Context, managerID string) (*ManagerOverview, error) {
	team, err := s.team(ctx, managerID)
	if err != nil {
		return nil, err
	}

	pendingStatus := domain.ManagerApprovalPending
	joins, err := s.users.List(ctx, repository.UserFilter{ManagerID: &managerID, ApprovalStatus: &pendingStatus})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	leaves, err := s.leaves.List(ctx, repository.LeaveFilter{
		ManagerID: &managerID,
		Statuses:  []domain.LeaveStatus{domain.LeaveStatusSubmitted},
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	pending, err := s.PendingTimesheetsForManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	var hours float64
	for i := range pending {
		hours += pending[i].TotalHours()
	}

	overview := &ManagerOverview{
		TeamSize:             len(team),
		PendingJoinRequests:  len(joins),
		PendingLeaveRequests: len(leaves),
		PendingTimesheets:    len(pending),
		PendingHours:         domain.RoundHours(hours),
	}
	s.logger.Debug("manager overview", zap.String("manager_id", managerID), zap.Int("team_size", overview.TeamSize))
	return overview, nil
}

func (s *ReportService) team(ctx context.Context, managerID string) ([]domain.User, error) {
	approved := domain.ManagerApprovalApproved
	team, err := s.users.List(ctx, repository.UserFilter{ManagerID: &managerID, ApprovalStatus: &approved})
	return team, apperrors.MapError(err)
}

func (s *ReportService) teamTimesheets(ctx context.Context, managerID string, status *domain.TimesheetStatus) ([]domain.Timesheet, error) {
	team, err := s.team(ctx, managerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(team))
	for _, member := range team {
		ids = append(ids, member.ID)
	}
	sheets, err := s.timesheets.List(ctx, repository.TimesheetFilter{EmployeeIDs: ids, Status: status})
	return sheets, apperrors.MapError(err)
}
