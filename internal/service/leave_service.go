package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// LeaveService runs the leave request lifecycle and its balance and overlap rules.
type LeaveService struct {
	leaves     repository.LeaveRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	locks      *KeyedLocker
	logger     *zap.Logger
	now        Clock
}

// LeaveDependencies bundles collaborators for the leave service.
type LeaveDependencies struct {
	LeaveRepo  repository.LeaveRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Locker     *KeyedLocker
	Logger     *zap.Logger
	Clock      Clock
}

// LeaveCreateInput describes a new leave request. Days may be zero to derive it from
// the dates.
type LeaveCreateInput struct {
	EmployeeID string
	Type       domain.LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Reason     string
}

// LeaveUpdateInput carries the fields to change; nil fields are left as they are.
type LeaveUpdateInput struct {
	Type      *domain.LeaveType
	StartDate *time.Time
	EndDate   *time.Time
	Days      *int
	Reason    *string
}

// LeaveListFilter narrows List.
type LeaveListFilter struct {
	EmployeeID *string
}

// NewLeaveService constructs the service.
func NewLeaveService(deps LeaveDependencies) *LeaveService {
	return &LeaveService{
		leaves:     deps.LeaveRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		locks:      orLocker(deps.Locker),
		logger:     orLogger(deps.Logger, "leave.service"),
		now:        orClock(deps.Clock),
	}
}

// GetBalances derives the remaining days per leave type from approved requests.
func (s *LeaveService) GetBalances(ctx context.Context, employeeID string) (domain.LeaveBalances, error) {
	if _, err := s.users.GetByID(ctx, employeeID); err != nil {
		return nil, storeError(err, "user", employeeID)
	}
	requests, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return domain.DeriveBalances(requests), nil
}

// List returns leave requests in submission order.
func (s *LeaveService) List(ctx context.Context, filter LeaveListFilter) ([]domain.LeaveRequest, error) {
	requests, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeID: filter.EmployeeID})
	return requests, apperrors.MapError(err)
}

// GetByID returns one leave request.
func (s *LeaveService) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	req, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "leave request", id)
	}
	return req, nil
}

// GetPendingForManager returns the SUBMITTED requests routed to managerID.
func (s *LeaveService) GetPendingForManager(ctx context.Context, managerID string) ([]domain.LeaveRequest, error) {
	requests, err := s.leaves.List(ctx, repository.LeaveFilter{
		ManagerID: &managerID,
		Statuses:  []domain.LeaveStatus{domain.LeaveStatusSubmitted},
	})
	return requests, apperrors.MapError(err)
}

// Create validates and stores a SUBMITTED leave request for the employee's approved manager.
func (s *LeaveService) Create(ctx context.Context, input LeaveCreateInput) (*domain.LeaveRequest, error) {
	s.logger.Debug("create leave request",
		zap.String("employee_id", input.EmployeeID),
		zap.String("type", string(input.Type)))

	start, end, days, err := normalizeLeaveRange(input.Type, input.StartDate, input.EndDate, input.Days)
	if err != nil {
		s.logger.Warn("invalid leave request", zap.String("employee_id", input.EmployeeID), zap.Error(err))
		return nil, err
	}

	unlock := s.locks.Lock(input.EmployeeID)
	defer unlock()

	employee, err := s.users.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, storeError(err, "user", input.EmployeeID)
	}
	managerID, ok := employee.ApprovedManagerID()
	if !ok {
		s.logger.Warn("leave requested without approved manager", zap.String("employee_id", employee.ID))
		return nil, apperrors.NewInvalidState("a reporting manager must approve the employee before leave can be requested", map[string]any{
			"employee_id":             employee.ID,
			"manager_approval_status": employee.ManagerApprovalStatus,
		})
	}

	existing, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeID: &employee.ID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.checkBalanceAndOverlap(existing, "", input.Type, start, end, days); err != nil {
		return nil, err
	}

	req := &domain.LeaveRequest{
		ID:           uuid.NewString(),
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Type:         input.Type,
		StartDate:    start,
		EndDate:      end,
		Days:         days,
		Status:       domain.LeaveStatusSubmitted,
		Reason:       strings.TrimSpace(input.Reason),
		ManagerID:    managerID,
		SubmittedAt:  s.now(),
	}
	if err := s.leaves.Create(ctx, req); err != nil {
		return nil, storeError(err, "leave request", req.ID)
	}

	s.logger.Info("leave request submitted",
		zap.String("leave_id", req.ID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days", req.Days))
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventLeaveSubmitted,
		EntityID: req.ID,
		ActorID:  req.EmployeeID,
		Payload: events.LeaveSubmittedPayload{
			EmployeeID: req.EmployeeID,
			ManagerID:  req.ManagerID,
			Type:       req.Type,
			StartDate:  req.StartDate.Format(domain.DateLayout),
			EndDate:    req.EndDate.Format(domain.DateLayout),
			Days:       req.Days,
		},
	})
	return req, nil
}

// Update edits a SUBMITTED request, re-running the balance and overlap checks when the
// type, dates or days change.
func (s *LeaveService) Update(ctx context.Context, id string, input LeaveUpdateInput) (*domain.LeaveRequest, error) {
	req, unlock, err := s.lockRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if req.Status != domain.LeaveStatusSubmitted {
		return nil, apperrors.NewInvalidState("only submitted leave requests can be edited", map[string]any{"id": id, "status": req.Status})
	}

	rangeChanged := input.Type != nil || input.StartDate != nil || input.EndDate != nil || input.Days != nil
	if rangeChanged {
		leaveType := req.Type
		if input.Type != nil {
			leaveType = *input.Type
		}
		start, end := req.StartDate, req.EndDate
		if input.StartDate != nil {
			start = *input.StartDate
		}
		if input.EndDate != nil {
			end = *input.EndDate
		}
		days := 0
		if input.Days != nil {
			days = *input.Days
		}

		start, end, days, err = normalizeLeaveRange(leaveType, start, end, days)
		if err != nil {
			s.logger.Warn("invalid leave update", zap.String("leave_id", id), zap.Error(err))
			return nil, err
		}

		existing, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeID: &req.EmployeeID})
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.checkBalanceAndOverlap(existing, req.ID, leaveType, start, end, days); err != nil {
			return nil, err
		}
		req.Type, req.StartDate, req.EndDate, req.Days = leaveType, start, end, days
	}
	if input.Reason != nil {
		req.Reason = strings.TrimSpace(*input.Reason)
	}

	if err := s.leaves.Update(ctx, req); err != nil {
		return nil, storeError(err, "leave request", id)
	}
	s.logger.Info("leave request updated", zap.String("leave_id", id))
	return req, nil
}

// Delete removes a SUBMITTED request.
func (s *LeaveService) Delete(ctx context.Context, id string) error {
	req, unlock, err := s.lockRequest(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if req.Status != domain.LeaveStatusSubmitted {
		return apperrors.NewInvalidState("only submitted leave requests can be deleted", map[string]any{"id": id, "status": req.Status})
	}
	if err := s.leaves.Delete(ctx, id); err != nil {
		return storeError(err, "leave request", id)
	}
	s.logger.Info("leave request deleted", zap.String("leave_id", id))
	return nil
}

// Review moves a SUBMITTED request to APPROVED or REJECTED.
func (s *LeaveService) Review(ctx context.Context, id string, status domain.LeaveStatus) (*domain.LeaveRequest, error) {
	if !status.IsReviewOutcome() {
		return nil, apperrors.NewValidationError("review status must be APPROVED or REJECTED", map[string]any{"status": status})
	}

	req, unlock, err := s.lockRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if req.Status != domain.LeaveStatusSubmitted {
		return nil, apperrors.NewInvalidState("leave request was already reviewed", map[string]any{"id": id, "status": req.Status})
	}
	if status == domain.LeaveStatusApproved {
		if err := s.checkApprovalBalance(ctx, req); err != nil {
			return nil, err
		}
	}

	reviewedAt := s.now()
	req.Status = status
	req.ReviewedAt = &reviewedAt
	if err := s.leaves.Update(ctx, req); err != nil {
		return nil, storeError(err, "leave request", id)
	}

	s.logger.Info("leave request reviewed", zap.String("leave_id", id), zap.String("status", string(status)))
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventLeaveReviewed,
		EntityID: req.ID,
		ActorID:  req.ManagerID,
		Payload:  events.LeaveReviewedPayload{EmployeeID: req.EmployeeID, Status: status},
	})
	return req, nil
}

// lockRequest loads a request, locks its employee and reloads it under the lock.
func (s *LeaveService) lockRequest(ctx context.Context, id string) (*domain.LeaveRequest, func(), error) {
	req, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storeError(err, "leave request", id)
	}
	unlock := s.locks.Lock(req.EmployeeID)
	req, err = s.leaves.GetByID(ctx, id)
	if err != nil {
		unlock()
		return nil, nil, storeError(err, "leave request", id)
	}
	return req, unlock, nil
}

// checkApprovalBalance guards approval against the balance left by requests approved
// since req was submitted. Callers hold the employee lock.
func (s *LeaveService) checkApprovalBalance(ctx context.Context, req *domain.LeaveRequest) error {
	existing, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeID: &req.EmployeeID})
	if err != nil {
		return apperrors.MapError(err)
	}
	remaining := domain.DeriveBalances(existing)[req.Type]
	if req.Days > remaining {
		s.logger.Warn("approval exceeds leave balance",
			zap.String("leave_id", req.ID),
			zap.String("type", string(req.Type)),
			zap.Int("remaining", remaining),
			zap.Int("requested", req.Days))
		return apperrors.NewInsufficientBalance(string(req.Type), remaining, req.Days)
	}
	return nil
}

func (s *LeaveService) checkBalanceAndOverlap(existing []domain.LeaveRequest, selfID string, leaveType domain.LeaveType, start, end time.Time, days int) error {
	others := make([]domain.LeaveRequest, 0, len(existing))
	for _, req := range existing {
		if req.ID != selfID {
			others = append(others, req)
		}
	}

	remaining := domain.DeriveBalances(others)[leaveType]
	if days > remaining {
		s.logger.Warn("insufficient leave balance",
			zap.String("type", string(leaveType)),
			zap.Int("remaining", remaining),
			zap.Int("requested", days))
		return apperrors.NewInsufficientBalance(string(leaveType), remaining, days)
	}

	for i := range others {
		other := &others[i]
		if other.BlocksOverlap() && other.Overlaps(start, end) {
			s.logger.Warn("leave dates overlap", zap.String("conflicting_id", other.ID))
			return apperrors.NewDateOverlap("dates overlap with an existing leave request", map[string]any{
				"conflicting_id": other.ID,
				"start_date":     other.StartDate.Format(domain.DateLayout),
				"end_date":       other.EndDate.Format(domain.DateLayout),
			})
		}
	}
	return nil
}

func normalizeLeaveRange(leaveType domain.LeaveType, start, end time.Time, days int) (time.Time, time.Time, int, error) {
	if !leaveType.Valid() {
		return start, end, days, apperrors.NewValidationError("unknown leave type", map[string]any{"type": leaveType})
	}
	if start.IsZero() || end.IsZero() {
		return start, end, days, apperrors.NewValidationError("start and end dates are required", nil)
	}
	start = domain.NormalizeDate(start)
	end = domain.NormalizeDate(end)
	if end.Before(start) {
		return start, end, days, apperrors.NewValidationError("end date is before start date", map[string]any{
			"start_date": start.Format(domain.DateLayout),
			"end_date":   end.Format(domain.DateLayout),
		})
	}
	span := domain.InclusiveDays(start, end)
	if days == 0 {
		days = span
	}
	if days != span {
		return start, end, days, apperrors.NewValidationError("days must match the inclusive date range", map[string]any{
			"days":     days,
			"expected": span,
		})
	}
	return start, end, days, nil
}
