package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/http/handlers"
	"github.com/spec-kit/directory-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Users            *handlers.UsersHandler
	AuthMiddleware   *auth.Middleware
	LoginRateLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes. The guard middleware wraps every
// protected operation uniformly; login, refresh and health stay open.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Check)

	if cfg.LoginRateLimiter != nil {
		app.Post("/login", cfg.LoginRateLimiter, cfg.Auth.Login)
	} else {
		app.Post("/login", cfg.Auth.Login)
	}
	app.Post("/refresh-token", cfg.Auth.Refresh)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/", cfg.Users.Create)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
