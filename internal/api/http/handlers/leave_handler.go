package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// LeaveHandler manages the caller's leave requests and balances.
type LeaveHandler struct {
	leaves    *service.LeaveService
	directory *service.DirectoryService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leaves *service.LeaveService, directory *service.DirectoryService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, directory: directory}
}

// Balances GET /leave/balances.
func (h *LeaveHandler) Balances(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	employeeID, err := queryEmployeeID(c, principal, h.directory)
	if err != nil {
		return err
	}
	balances, err := h.leaves.GetBalances(c.UserContext(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveBalanceResponses(balances)})
}

// List GET /leave/requests.
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	employeeID, err := queryEmployeeID(c, principal, h.directory)
	if err != nil {
		return err
	}
	requests, err := h.leaves.List(c.UserContext(), service.LeaveListFilter{EmployeeID: &employeeID})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponses(requests)})
}

// Create POST /leave/requests.
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateLeaveRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	start, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDateField("end_date", req.EndDate)
	if err != nil {
		return err
	}

	leave, err := h.leaves.Create(c.UserContext(), service.LeaveCreateInput{
		EmployeeID: principal.ID(),
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Days:       req.Days,
		Reason:     req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(leave)})
}

// Update PATCH /leave/requests/:id.
func (h *LeaveHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if _, err := h.ownedRequest(c, principal); err != nil {
		return err
	}

	var req dto.UpdateLeaveRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	input := service.LeaveUpdateInput{Type: req.Type, Days: req.Days, Reason: req.Reason}
	if req.StartDate != nil {
		start, err := parseDateField("start_date", *req.StartDate)
		if err != nil {
			return err
		}
		input.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDateField("end_date", *req.EndDate)
		if err != nil {
			return err
		}
		input.EndDate = &end
	}

	leave, err := h.leaves.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeaveRequestResponse(leave)})
}

// Delete DELETE /leave/requests/:id.
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if _, err := h.ownedRequest(c, principal); err != nil {
		return err
	}
	if err := h.leaves.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *LeaveHandler) ownedRequest(c *fiber.Ctx, principal *auth.Principal) (*domain.LeaveRequest, error) {
	leave, err := h.leaves.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if leave.EmployeeID != principal.ID() {
		return nil, apperrors.NewForbidden("leave request belongs to another employee")
	}
	return leave, nil
}
