package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/itsm-service/internal/api/http/handlers"
	"github.com/helpdesk-kit/itsm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Users           *handlers.UsersHandler
	Tickets         *handlers.TicketsHandler
	Assets          *handlers.AssetsHandler
	ClaimMiddleware *auth.ClaimMiddleware
}

// RegisterRoutes wires HTTP routes. The permission matrix is enforced inside
// the services; the claim middleware only resolves bearer tokens into caller
// claims for the guarded operations.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Users.Token)

	app.Post("/users", cfg.Users.Create)
	app.Get("/users", cfg.Users.List)
	app.Get("/users/:id", cfg.Users.Get)

	tickets := app.Group("/tickets", cfg.ClaimMiddleware.Handle)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Post("/assign", cfg.Tickets.Assign)
	tickets.Patch("/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id", cfg.Tickets.Get)

	assets := app.Group("/assets", cfg.ClaimMiddleware.Handle)
	assets.Post("", cfg.Assets.Create)
	assets.Get("", cfg.Assets.List)
	assets.Post("/depreciation", cfg.Assets.Depreciation)
	assets.Get("/:id", cfg.Assets.Get)
}
