package routes

import (
	"github.com/lumina-works/corporate-site/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	// Path used by the site's form
	router.POST("/contact", m.Validation.ValidateContactRequest(), contact.Submit)

	v1 := router.Group("/v1")
	{
		v1.POST("/contact/submit", m.Validation.ValidateContactRequest(), contact.Submit)
		v1.GET("/site-config", contact.SiteConfig)
	}
}
