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

// TimesheetService runs the monthly timesheet lifecycle.
type TimesheetService struct {
	timesheets repository.TimesheetRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	locks      *KeyedLocker
	logger     *zap.Logger
	now        Clock
}

// TimesheetDependencies bundles collaborators for the timesheet service.
type TimesheetDependencies struct {
	TimesheetRepo repository.TimesheetRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	Locker        *KeyedLocker
	Logger        *zap.Logger
	Clock         Clock
}

// TimesheetListFilter narrows List.
type TimesheetListFilter struct {
	EmployeeID *string
	Status     *domain.TimesheetStatus
}

// EntryInput describes a work session to upsert. An empty ID inserts a new entry.
type EntryInput struct {
	ID          string
	Date        time.Time
	CheckIn     string
	CheckOut    string
	Description string
}

// NewTimesheetService constructs the service.
func NewTimesheetService(deps TimesheetDependencies) *TimesheetService {
	return &TimesheetService{
		timesheets: deps.TimesheetRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		locks:      orLocker(deps.Locker),
		logger:     orLogger(deps.Logger, "timesheet.service"),
		now:        orClock(deps.Clock),
	}
}

// List returns timesheets in creation order.
func (s *TimesheetService) List(ctx context.Context, filter TimesheetListFilter) ([]domain.Timesheet, error) {
	sheets, err := s.timesheets.List(ctx, repository.TimesheetFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
	})
	return sheets, apperrors.MapError(err)
}

// GetByID returns one timesheet.
func (s *TimesheetService) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	ts, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "timesheet", id)
	}
	return ts, nil
}

// Create opens an empty DRAFT timesheet for the employee and month.
func (s *TimesheetService) Create(ctx context.Context, employeeID, month string) (*domain.Timesheet, error) {
	s.logger.Debug("create timesheet", zap.String("employee_id", employeeID), zap.String("month", month))

	month = strings.TrimSpace(month)
	if _, err := domain.ParseMonth(month); err != nil {
		s.logger.Warn("invalid timesheet month", zap.String("month", month))
		return nil, apperrors.NewValidationError("month must be formatted YYYY-MM", map[string]any{"month": month})
	}

	unlock := s.locks.Lock(employeeID)
	defer unlock()

	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, storeError(err, "user", employeeID)
	}

	existing, err := s.timesheets.List(ctx, repository.TimesheetFilter{EmployeeID: &employeeID, Month: &month})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(existing) > 0 {
		s.logger.Warn("duplicate timesheet month", zap.String("employee_id", employeeID), zap.String("month", month))
		return nil, apperrors.NewConflict("a timesheet for this month already exists", map[string]any{
			"month":        month,
			"timesheet_id": existing[0].ID,
		})
	}

	ts := &domain.Timesheet{
		ID:           uuid.NewString(),
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Month:        month,
		Status:       domain.TimesheetStatusDraft,
		Entries:      []domain.TimesheetEntry{},
		CreatedAt:    s.now(),
	}
	if err := s.timesheets.Create(ctx, ts); err != nil {
		return nil, storeError(err, "timesheet", ts.ID)
	}
	s.logger.Info("timesheet created", zap.String("timesheet_id", ts.ID), zap.String("month", month))
	return ts, nil
}

// Delete removes a DRAFT timesheet.
func (s *TimesheetService) Delete(ctx context.Context, id string) error {
	ts, unlock, err := s.lockTimesheet(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := requireDraft(ts, "deleted"); err != nil {
		return err
	}
	if err := s.timesheets.Delete(ctx, id); err != nil {
		return storeError(err, "timesheet", id)
	}
	s.logger.Info("timesheet deleted", zap.String("timesheet_id", id))
	return nil
}

// UpsertEntry inserts the entry when its id is new and replaces it in place otherwise.
func (s *TimesheetService) UpsertEntry(ctx context.Context, timesheetID string, input EntryInput) (*domain.Timesheet, error) {
	if _, err := domain.ParseClock(input.CheckIn); err != nil {
		return nil, apperrors.NewValidationError("checkIn must be formatted HH:MM", map[string]any{"check_in": input.CheckIn})
	}
	if _, err := domain.ParseClock(input.CheckOut); err != nil {
		return nil, apperrors.NewValidationError("checkOut must be formatted HH:MM", map[string]any{"check_out": input.CheckOut})
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("date is required", nil)
	}

	ts, unlock, err := s.lockTimesheet(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requireDraft(ts, "edited"); err != nil {
		return nil, err
	}
	date := domain.NormalizeDate(input.Date)
	if !ts.ContainsDate(date) {
		s.logger.Warn("entry outside timesheet month", zap.String("timesheet_id", timesheetID), zap.Time("date", date))
		return nil, apperrors.NewValidationError("entry date is outside the timesheet month", map[string]any{
			"date":  date.Format(domain.DateLayout),
			"month": ts.Month,
		})
	}

	entry := domain.TimesheetEntry{
		ID:          strings.TrimSpace(input.ID),
		Date:        date,
		CheckIn:     strings.TrimSpace(input.CheckIn),
		CheckOut:    strings.TrimSpace(input.CheckOut),
		Description: strings.TrimSpace(input.Description),
		Hours:       domain.ComputeHours(input.CheckIn, input.CheckOut),
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	inserted := ts.UpsertEntry(entry)

	if err := s.timesheets.Update(ctx, ts); err != nil {
		return nil, storeError(err, "timesheet", timesheetID)
	}
	s.logger.Info("timesheet entry saved",
		zap.String("timesheet_id", timesheetID),
		zap.String("entry_id", entry.ID),
		zap.Bool("inserted", inserted),
		zap.Float64("hours", entry.Hours))
	return ts, nil
}

// DeleteEntry removes an entry from a DRAFT timesheet. Unknown entry ids are ignored.
func (s *TimesheetService) DeleteEntry(ctx context.Context, timesheetID, entryID string) (*domain.Timesheet, error) {
	ts, unlock, err := s.lockTimesheet(ctx, timesheetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requireDraft(ts, "edited"); err != nil {
		return nil, err
	}
	if !ts.RemoveEntry(entryID) {
		return ts, nil
	}
	if err := s.timesheets.Update(ctx, ts); err != nil {
		return nil, storeError(err, "timesheet", timesheetID)
	}
	s.logger.Info("timesheet entry removed", zap.String("timesheet_id", timesheetID), zap.String("entry_id", entryID))
	return ts, nil
}

// Submit moves a non-empty DRAFT timesheet to SUBMITTED.
func (s *TimesheetService) Submit(ctx context.Context, id string) (*domain.Timesheet, error) {
	ts, unlock, err := s.lockTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requireDraft(ts, "submitted"); err != nil {
		return nil, err
	}
	if len(ts.Entries) == 0 {
		s.logger.Warn("empty timesheet submitted", zap.String("timesheet_id", id))
		return nil, apperrors.NewInvalidState("timesheet has no entries", map[string]any{"id": id})
	}

	submittedAt := s.now()
	ts.Status = domain.TimesheetStatusSubmitted
	ts.SubmittedAt = &submittedAt
	if err := s.timesheets.Update(ctx, ts); err != nil {
		return nil, storeError(err, "timesheet", id)
	}

	s.logger.Info("timesheet submitted", zap.String("timesheet_id", id), zap.Float64("hours", ts.TotalHours()))
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventTimesheetSubmitted,
		EntityID: ts.ID,
		ActorID:  ts.EmployeeID,
		Payload: events.TimesheetSubmittedPayload{
			EmployeeID: ts.EmployeeID,
			Month:      ts.Month,
			TotalHours: ts.TotalHours(),
		},
	})
	return ts, nil
}

// Review moves a SUBMITTED timesheet to APPROVED, or to REJECTED with a reason.
func (s *TimesheetService) Review(ctx context.Context, id string, status domain.TimesheetStatus, reason string) (*domain.Timesheet, error) {
	if !status.IsReviewOutcome() {
		return nil, apperrors.NewValidationError("review status must be APPROVED or REJECTED", map[string]any{"status": status})
	}
	reason = strings.TrimSpace(reason)
	if status == domain.TimesheetStatusRejected && reason == "" {
		return nil, apperrors.NewValidationError("a rejection reason is required", nil)
	}

	ts, unlock, err := s.lockTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if ts.Status != domain.TimesheetStatusSubmitted {
		return nil, apperrors.NewInvalidState("only submitted timesheets can be reviewed", map[string]any{"id": id, "status": ts.Status})
	}

	reviewedAt := s.now()
	ts.Status = status
	ts.ReviewedAt = &reviewedAt
	if status == domain.TimesheetStatusRejected {
		ts.RejectionReason = &reason
	}
	if err := s.timesheets.Update(ctx, ts); err != nil {
		return nil, storeError(err, "timesheet", id)
	}

	s.logger.Info("timesheet reviewed", zap.String("timesheet_id", id), zap.String("status", string(status)))
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventTimesheetReviewed,
		EntityID: ts.ID,
		Payload: events.TimesheetReviewedPayload{
			EmployeeID: ts.EmployeeID,
			Month:      ts.Month,
			Status:     status,
			Reason:     reason,
		},
	})
	return ts, nil
}

func (s *TimesheetService) lockTimesheet(ctx context.Context, id string) (*domain.Timesheet, func(), error) {
	ts, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storeError(err, "timesheet", id)
	}
	unlock := s.locks.Lock(ts.EmployeeID)
	ts, err = s.timesheets.GetByID(ctx, id)
	if err != nil {
		unlock()
		return nil, nil, storeError(err, "timesheet", id)
	}
	return ts, unlock, nil
}

func requireDraft(ts *domain.Timesheet, action string) error {
	if ts.Status == domain.TimesheetStatusDraft {
		return nil
	}
	return apperrors.NewInvalidState("only draft timesheets can be "+action, map[string]any{
		"id":     ts.ID,
		"status": ts.Status,
	})
}
