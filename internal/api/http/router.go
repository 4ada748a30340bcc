package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Navigation     *handlers.NavigationHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	app.Get("/navigation", cfg.AuthMiddleware.Optional, cfg.Navigation.Resolve)

	complaints := app.Group("/complaints")
	complaints.Get("", cfg.Complaints.ListComplaints)
	complaints.Post("", cfg.Complaints.CreateComplaint)
	complaints.Get("/:id", cfg.Complaints.GetComplaint)
	complaints.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Complaints.UpdateComplaint)
	complaints.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Complaints.DeleteComplaint)
	complaints.Get("/:id/history", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Complaints.ComplaintHistory)
}
