package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/http/handlers"
	"github.com/spec-kit/case-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Cases          *handlers.CasesHandler
	StaffCases     *handlers.StaffCasesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Accounts.Register)
	app.Post("/login", cfg.Accounts.Login)
	app.Get("/check_username/:username", cfg.Accounts.CheckUsername)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/logout", cfg.Accounts.Logout)
	protected.Post("/create_case", cfg.Cases.CreateCase)
	protected.Get("/cases", cfg.Cases.ListCases)
	protected.Get("/all_cases", cfg.StaffCases.AllCases)
	protected.Get("/pending_cases", cfg.StaffCases.PendingCases)
	protected.Get("/my_taken_cases", cfg.StaffCases.MyTakenCases)
	protected.Post("/update_taken_case/:id", cfg.StaffCases.UpdateTakenCase)
}
