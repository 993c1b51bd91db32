package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// TimesheetsHandler manages the caller's monthly timesheets.
type TimesheetsHandler struct {
	timesheets *service.TimesheetService
	directory  *service.DirectoryService
}

// NewTimesheetsHandler constructs handler.
func NewTimesheetsHandler(timesheets *service.TimesheetService, directory *service.DirectoryService) *TimesheetsHandler {
	return &TimesheetsHandler{timesheets: timesheets, directory: directory}
}

// List GET /timesheets.
func (h *TimesheetsHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	employeeID, err := queryEmployeeID(c, principal, h.directory)
	if err != nil {
		return err
	}
	filter := service.TimesheetListFilter{EmployeeID: &employeeID}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := domain.TimesheetStatus(strings.ToUpper(raw))
		if !status.Valid() {
			return apperrors.NewValidationError("unknown timesheet status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}

	sheets, err := h.timesheets.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponses(sheets)})
}

// Create POST /timesheets.
func (h *TimesheetsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateTimesheetRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	ts, err := h.timesheets.Create(c.UserContext(), principal.ID(), req.Month)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTimesheetResponse(ts)})
}

// Get GET /timesheets/:id. The owner, their approved manager and HR may read it.
func (h *TimesheetsHandler) Get(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	ts, err := h.timesheets.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ts.EmployeeID != principal.ID() && principal.Role() != domain.RoleHR {
		employee, err := h.directory.GetUser(c.UserContext(), ts.EmployeeID)
		if err != nil {
			return err
		}
		if !employee.ReportsTo(principal.ID()) {
			return apperrors.NewForbidden("timesheet belongs to another team")
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponse(ts)})
}

// Delete DELETE /timesheets/:id.
func (h *TimesheetsHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.requireOwner(c, principal); err != nil {
		return err
	}
	if err := h.timesheets.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpsertEntry PUT /timesheets/:id/entries.
func (h *TimesheetsHandler) UpsertEntry(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.requireOwner(c, principal); err != nil {
		return err
	}
	var req dto.UpsertEntryRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	day, err := parseDateField("date", req.Date)
	if err != nil {
		return err
	}

	ts, err := h.timesheets.UpsertEntry(c.UserContext(), c.Params("id"), service.EntryInput{
		ID:          req.ID,
		Date:        day,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponse(ts)})
}

// DeleteEntry DELETE /timesheets/:id/entries/:entryId.
func (h *TimesheetsHandler) DeleteEntry(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.requireOwner(c, principal); err != nil {
		return err
	}
	ts, err := h.timesheets.DeleteEntry(c.UserContext(), c.Params("id"), c.Params("entryId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponse(ts)})
}

// Submit POST /timesheets/:id/submit.
func (h *TimesheetsHandler) Submit(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.requireOwner(c, principal); err != nil {
		return err
	}
	ts, err := h.timesheets.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponse(ts)})
}

func (h *TimesheetsHandler) requireOwner(c *fiber.Ctx, principal *auth.Principal) error {
	ts, err := h.timesheets.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if ts.EmployeeID != principal.ID() {
		return apperrors.NewForbidden("timesheet belongs to another employee")
	}
	return nil
}
