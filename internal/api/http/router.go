package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything outside /auth and the health
// probes requires a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/authenticate", cfg.Auth.Authenticate)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", cfg.Accounts.List)
	users.Get("/by-email/:email", cfg.Accounts.FindByEmail)
	users.Post("/", cfg.Accounts.Create)
	users.Put("/", cfg.Accounts.Update)
	users.Delete("/:id", cfg.Accounts.Delete)

	todos := app.Group("/todos", cfg.AuthMiddleware.Handle)
	todos.Get("/:ownerId", cfg.Tasks.ListByOwner)
	todos.Get("/:ownerId/active/:active", cfg.Tasks.ListByOwnerAndActive)
	todos.Post("/", cfg.Tasks.Create)
	todos.Put("/", cfg.Tasks.Update)
	todos.Delete("/:id", cfg.Tasks.Delete)
}
