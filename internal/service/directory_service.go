package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// DirectoryService owns user lookups and the employee to manager handshake.
type DirectoryService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	locks      *KeyedLocker
	logger     *zap.Logger
	now        Clock
}

// DirectoryDependencies bundles collaborators for the directory service.
type DirectoryDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Locker     *KeyedLocker
	Logger     *zap.Logger
	Clock      Clock
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		locks:      orLocker(deps.Locker),
		logger:     orLogger(deps.Logger, "directory.service"),
		now:        orClock(deps.Clock),
	}
}

// Login resolves a user by email. There is no credential check.
func (s *DirectoryService) Login(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("login for unknown email", zap.String("email", email))
		return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetUser returns the user with the given id.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user", id)
	}
	return user, nil
}

// RequestManager asks managerID to accept employeeID into their team.
func (s *DirectoryService) RequestManager(ctx context.Context, employeeID, managerID string) (*domain.User, error) {
	s.logger.Debug("request manager", zap.String("employee_id", employeeID), zap.String("manager_id", managerID))

	unlock := s.locks.Lock(employeeID)
	defer unlock()

	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, storeError(err, "user", employeeID)
	}
	if employee.Role != domain.RoleEmployee {
		s.logger.Warn("manager requested by non-employee", zap.String("employee_id", employeeID), zap.String("role", string(employee.Role)))
		return nil, apperrors.NewInvalidState("only employees can request a manager", map[string]any{"role": employee.Role})
	}

	manager, err := s.users.GetByID(ctx, managerID)
	if err != nil {
		return nil, storeError(err, "manager", managerID)
	}
	if manager.Role != domain.RoleManager {
		return nil, apperrors.NewValidationError("selected user is not a manager", map[string]any{"manager_id": managerID})
	}

	id := manager.ID
	employee.ManagerID = &id
	employee.ManagerApprovalStatus = domain.ManagerApprovalPending
	employee.UpdatedAt = s.now()
	if err := s.users.Update(ctx, employee); err != nil {
		return nil, storeError(err, "user", employeeID)
	}

	s.logger.Info("manager join requested", zap.String("employee_id", employeeID), zap.String("manager_id", managerID))
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventManagerJoinRequested,
		EntityID: employee.ID,
		ActorID:  employee.ID,
		Payload:  events.ManagerJoinRequestedPayload{EmployeeID: employee.ID, ManagerID: managerID},
	})
	return employee, nil
}

// RespondToJoinRequest approves or rejects a pending join request.
func (s *DirectoryService) RespondToJoinRequest(ctx context.Context, employeeID string, approved bool) (*domain.User, error) {
	unlock := s.locks.Lock(employeeID)
	defer unlock()

	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, storeError(err, "user", employeeID)
	}
	if employee.ManagerApprovalStatus != domain.ManagerApprovalPending || employee.ManagerID == nil {
		return nil, apperrors.NewInvalidState("no pending join request", map[string]any{
			"employee_id": employeeID,
			"status":      employee.ManagerApprovalStatus,
		})
	}

	managerID := *employee.ManagerID
	if approved {
		employee.ManagerApprovalStatus = domain.ManagerApprovalApproved
	} else {
		employee.ManagerApprovalStatus = domain.ManagerApprovalRejected
		employee.ManagerID = nil
	}
	employee.UpdatedAt = s.now()
	if err := s.users.Update(ctx, employee); err != nil {
		return nil, storeError(err, "user", employeeID)
	}

	s.logger.Info("join request answered",
		zap.String("employee_id", employeeID),
		zap.String("manager_id", managerID),
		zap.String("status", string(employee.ManagerApprovalStatus)))
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:     events.EventManagerJoinResponded,
		EntityID: employee.ID,
		ActorID:  managerID,
		Payload: events.ManagerJoinRespondedPayload{
			EmployeeID: employee.ID,
			ManagerID:  managerID,
			Status:     employee.ManagerApprovalStatus,
		},
	})
	return employee, nil
}

// ListManagers returns every MANAGER.
func (s *DirectoryService) ListManagers(ctx context.Context) ([]domain.User, error) {
	role := domain.RoleManager
	users, err := s.users.List(ctx, repository.UserFilter{Role: &role})
	return users, apperrors.MapError(err)
}

// GetJoinRequests returns employees waiting for managerID's answer.
func (s *DirectoryService) GetJoinRequests(ctx context.Context, managerID string) ([]domain.User, error) {
	return s.listByManager(ctx, managerID, domain.ManagerApprovalPending)
}

// ListTeam returns the approved members of managerID's team.
func (s *DirectoryService) ListTeam(ctx context.Context, managerID string) ([]domain.User, error) {
	return s.listByManager(ctx, managerID, domain.ManagerApprovalApproved)
}

// GetTeamSize counts approved team members.
func (s *DirectoryService) GetTeamSize(ctx context.Context, managerID string) (int, error) {
	team, err := s.ListTeam(ctx, managerID)
	if err != nil {
		return 0, err
	}
	return len(team), nil
}

func (s *DirectoryService) listByManager(ctx context.Context, managerID string, status domain.ManagerApprovalStatus) ([]domain.User, error) {
	users, err := s.users.List(ctx, repository.UserFilter{ManagerID: &managerID, ApprovalStatus: &status})
	return users, apperrors.MapError(err)
}

// Seed inserts the users that are not yet stored and returns how many were added.
func (s *DirectoryService) Seed(ctx context.Context, users []domain.User) (int, error) {
	inserted := 0
	ordered := seedOrder(users)
	for i := range ordered {
		user := ordered[i].Clone()
		_, err := s.users.GetByID(ctx, user.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return inserted, apperrors.MapError(err)
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = s.now()
		}
		if user.UpdatedAt.IsZero() {
			user.UpdatedAt = user.CreatedAt
		}
		if user.ManagerApprovalStatus == "" {
			user.ManagerApprovalStatus = domain.ManagerApprovalNone
		}
		if err := s.users.Create(ctx, &user); err != nil {
			return inserted, storeError(err, "user", user.ID)
		}
		inserted++
	}
	if inserted > 0 {
		s.logger.Info("directory seeded", zap.Int("inserted", inserted))
	}
	return inserted, nil
}
