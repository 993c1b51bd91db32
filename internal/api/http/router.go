package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Leave          *handlers.LeaveHandler
	Timesheets     *handlers.TimesheetsHandler
	Manager        *handlers.ManagerHandler
	HR             *handlers.HRHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Users.Login)

	employee := auth.RequireRole(domain.RoleEmployee)
	manager := auth.RequireRole(domain.RoleManager)
	hr := auth.RequireRole(domain.RoleHR)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	protected.Get("/me", cfg.Users.Me)
	protected.Post("/me/manager", employee, cfg.Users.RequestManager)
	protected.Get("/managers", cfg.Users.ListManagers)

	leave := protected.Group("/leave")
	leave.Get("/balances", cfg.Leave.Balances)
	leave.Get("/requests", cfg.Leave.List)
	leave.Post("/requests", employee, cfg.Leave.Create)
	leave.Patch("/requests/:id", employee, cfg.Leave.Update)
	leave.Delete("/requests/:id", employee, cfg.Leave.Delete)

	timesheets := protected.Group("/timesheets")
	timesheets.Get("", cfg.Timesheets.List)
	timesheets.Post("", employee, cfg.Timesheets.Create)
	timesheets.Get("/:id", cfg.Timesheets.Get)
	timesheets.Delete("/:id", employee, cfg.Timesheets.Delete)
	timesheets.Put("/:id/entries", employee, cfg.Timesheets.UpsertEntry)
	timesheets.Delete("/:id/entries/:entryId", employee, cfg.Timesheets.DeleteEntry)
	timesheets.Post("/:id/submit", employee, cfg.Timesheets.Submit)

	mgr := protected.Group("/manager", manager)
	mgr.Get("/join-requests", cfg.Manager.JoinRequests)
	mgr.Post("/join-requests/:employeeId", cfg.Manager.RespondJoinRequest)
	mgr.Get("/team", cfg.Manager.Team)
	mgr.Get("/overview", cfg.Manager.Overview)
	mgr.Get("/leave/pending", cfg.Manager.PendingLeave)
	mgr.Post("/leave/:id/review", cfg.Manager.ReviewLeave)
	mgr.Get("/timesheets/pending", cfg.Manager.PendingTimesheets)
	mgr.Get("/timesheets", cfg.Manager.TeamTimesheets)
	mgr.Post("/timesheets/:id/review", cfg.Manager.ReviewTimesheet)

	hrGroup := protected.Group("/hr", hr)
	hrGroup.Get("/timesheets/approved", cfg.HR.ApprovedTimesheets)
	hrGroup.Get("/summary", cfg.HR.Summary)
}
