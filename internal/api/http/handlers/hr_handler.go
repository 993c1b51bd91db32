package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/service"
)

// HRHandler serves organisation wide timesheet reports.
type HRHandler struct {
	reports *service.ReportService
}

// NewHRHandler constructs handler.
func NewHRHandler(reports *service.ReportService) *HRHandler {
	return &HRHandler{reports: reports}
}

// ApprovedTimesheets GET /hr/timesheets/approved.
func (h *HRHandler) ApprovedTimesheets(c *fiber.Ctx) error {
	sheets, err := h.reports.ApprovedTimesheets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTimesheetResponses(sheets)})
}

// Summary GET /hr/summary.
func (h *HRHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.HoursSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHoursSummaryResponse(summary)})
}
