package handlers

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

var validate = newValidator()

// newValidator reports field errors under their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parses the body into dst and runs its struct tag validation.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			return apperrors.NewValidationError("payload failed validation", details)
		}
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func currentPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseDateField(field, value string) (time.Time, error) {
	parsed, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date", map[string]any{field: value})
	}
	return parsed, nil
}

// queryEmployeeID returns the employee_id query parameter, defaulting to the caller.
// HR may look at anyone, a MANAGER only at approved members of their team.
func queryEmployeeID(c *fiber.Ctx, principal *auth.Principal, users auth.UserLookup) (string, error) {
	employeeID := strings.TrimSpace(c.Query("employee_id"))
	if employeeID == "" || employeeID == principal.ID() {
		return principal.ID(), nil
	}
	switch principal.Role() {
	case domain.RoleHR:
		return employeeID, nil
	case domain.RoleManager:
		employee, err := users.GetUser(c.UserContext(), employeeID)
		if err != nil {
			return "", err
		}
		if !employee.ReportsTo(principal.ID()) {
			return "", apperrors.NewForbidden("employee belongs to another team")
		}
		return employeeID, nil
	default:
		return "", apperrors.NewForbidden("employees can only view their own records")
	}
}
