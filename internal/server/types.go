package server

import (
	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/logging"

	"github.com/gin-gonic/gin"
)

// ServiceName identifies the API in traces and logs
const ServiceName = "corporate-site-api"

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	profile *config.SiteProfile
	logger  *logging.Logger
}
