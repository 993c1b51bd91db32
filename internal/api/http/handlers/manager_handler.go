package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// ManagerHandler serves the manager's team, join requests and review queues.
type ManagerHandler struct {
	directory  *service.DirectoryService
	leaves     *service.LeaveService
	timesheets *service.TimesheetService
	reports    *service.ReportService
}

// NewManagerHandler constructs handler.
func NewManagerHandler(directory *service.DirectoryService, leaves *service.LeaveService, timesheets *service.TimesheetService, reports *service.ReportService) *ManagerHandler {
	return &ManagerHandler{directory: directory, leaves: leaves, timesheets: timesheets, reports: reports}
}

// JoinRequests GET /manager/join-requests.
func (h *ManagerHandler) JoinRequests(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	users, err := h.directory.GetJoinRequests(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// RespondJoinRequest POST /manager/join-requests/:employeeId.
func (h *ManagerHandler) RespondJoinRequest(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.JoinResponseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	employeeID := c.Params("employeeId")
	employee, err := h.directory.GetUser(c.UserContext(), employeeID)
	if err != nil {
		return err
	}
	if employee.ManagerID == nil || *employee.ManagerID != principal.ID() {
		return apperrors.NewForbidden("join request is addressed to another manager")
	}

	updated, err := h.directory.RespondToJoinRequest(c.UserContext(), employeeID, *req.Approved)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(updated)})
}

// Team GET /manager/team.
func (h *ManagerHandler) Team(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	members, err := h.directory.ListTeam(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TeamResponse{
		Size:    len(members),
		Members: dto.NewUserResponses(members),
	}})
}

// Overview GET /manager/overview.
func (h *ManagerHandler) Overview(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	overview, err := h.reports.ManagerOverview(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewManagerOverviewResponse(overview)})
}

// PendingLeave GET /manager/leave/pending.
func (h *ManagerHandler) PendingLeave(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	requests, err := h.leaves.GetPendingForManager(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// ReviewLeave POST /manager/leave/:id/review.
func (h *ManagerHandler) ReviewLeave(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReviewLeaveRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	leave, err := h.leaves.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if leave.ManagerID != principal.ID() {
		return apperrors.NewForbidden("leave request is routed to another manager")
	}

	reviewed, err := h.leaves.Review(c.UserContext(), leave.ID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(reviewed)})
}

// PendingTimesheets GET /manager/timesheets/pending.
func (h *ManagerHandler) PendingTimesheets(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	sheets, err := h.reports.PendingTimesheetsForManager(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponses(sheets)})
}

// TeamTimesheets GET /manager/timesheets.
func (h *ManagerHandler) TeamTimesheets(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	sheets, err := h.reports.TeamTimesheets(c.UserContext(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponses(sheets)})
}

// ReviewTimesheet POST /manager/timesheets/:id/review.
func (h *ManagerHandler) ReviewTimesheet(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReviewTimesheetRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ts, err := h.timesheets.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	employee, err := h.directory.GetUser(c.UserContext(), ts.EmployeeID)
	if err != nil {
		return err
	}
	if !employee.ReportsTo(principal.ID()) {
		return apperrors.NewForbidden("timesheet belongs to another team")
	}

	reviewed, err := h.timesheets.Review(c.UserContext(), ts.ID, req.Status, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponse(reviewed)})
}
