package routes

import (
	"github.com/lumina-works/corporate-site/internal/api/handlers"
	"github.com/lumina-works/corporate-site/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Contact *handlers.ContactHandler
}

// Middleware contains route-specific middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
}
