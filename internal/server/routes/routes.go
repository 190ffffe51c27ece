package routes

import (
	"net/http"

	"github.com/lumina-works/corporate-site/internal/api/dto/common"
	"github.com/lumina-works/corporate-site/internal/api/middleware"
	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	SetupHealthRoutes(router, h.Health)

	api := router.Group("/api")
	SetupContactRoutes(api, h.Contact, m)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewMessageResponse(common.MsgNotFound))
	})
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger, serviceName string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
}
