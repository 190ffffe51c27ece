package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lumina-works/corporate-site/internal/api/handlers"
	"github.com/lumina-works/corporate-site/internal/api/middleware"
	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/server/routes"
	"github.com/lumina-works/corporate-site/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// NewServer creates a new server instance with every route wired
func NewServer(cfg *config.Config, profile *config.SiteProfile, logger *logging.Logger) *Server {
	// Disable Gin's default logger entirely because we're using our custom logger
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.HandleMethodNotAllowed = false

	// Forwarding headers are honored only from configured proxies
	router.TrustedPlatform = cfg.PlatformHeader()
	if err := router.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		logger.Error("Invalid trusted proxies, trusting none: %v", err)
		_ = router.SetTrustedProxies(nil)
	}

	s := &Server{
		router:  router,
		cfg:     cfg,
		profile: profile,
		logger:  logger,
	}

	routes.SetupGlobalMiddleware(router, cfg, logger, ServiceName)
	routes.Setup(router, s.buildHandlers(), &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(logger),
	})

	return s
}

func (s *Server) buildHandlers() *routes.Handlers {
	httpClient := service.NewHTTPClient(s.cfg.HTTPClientTimeout)

	contactService := service.NewContactService(
		service.NewTurnstileService(s.cfg.TurnstileSecretKey, s.cfg.TurnstileVerifyURL, httpClient),
		service.NewDiscordService(s.cfg.DiscordWebhookURL, s.profile, service.NewWebhookHTTPClient(s.cfg.HTTPClientTimeout)),
		service.NewEmailService(s.cfg.ResendAPIKey, s.cfg.ResendBaseURL, s.profile, httpClient),
		s.logger,
	)

	return &routes.Handlers{
		Health:  handlers.NewHealthHandler(),
		Contact: handlers.NewContactHandler(contactService, s.cfg.TurnstileSiteKey, s.logger),
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
