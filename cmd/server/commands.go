package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumina-works/corporate-site/internal/config"
	"github.com/lumina-works/corporate-site/internal/logging"
	"github.com/lumina-works/corporate-site/internal/server"
	"github.com/lumina-works/corporate-site/internal/telemetry"
	"github.com/lumina-works/corporate-site/internal/version"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate environment configuration and the site profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, profile, warnings, err := loadConfig()
		if err != nil {
			return err
		}
		for _, w := range warnings {
			cmd.Printf("warning: %s\n", w)
		}
		cmd.Printf("configuration OK (env=%s, port=%s, organization=%s)\n",
			cfg.Environment, cfg.Port, profile.Organization.Name)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

// loadConfig builds the read-only configuration and fails fast on anything
// that would make every submission fail.
func loadConfig() (*config.Config, *config.SiteProfile, []string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, nil, warnings, err
	}

	profile, err := config.LoadProfile(cfg.SiteProfilePath)
	if err != nil {
		return nil, nil, warnings, err
	}

	return cfg, profile, warnings, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, profile, warnings, err := loadConfig()
	if err != nil {
		return fmt.Errorf("startup aborted: %w", err)
	}

	logging.Configure(cfg.LogConfig())
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting %s %s in %s mode", server.ServiceName, version.Info(), cfg.Environment)
	for _, w := range warnings {
		logger.Warn("%s", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, server.ServiceName, version.Version)
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Error("Failed to flush traces: %v", err)
		}
	}()

	srv := server.NewServer(cfg, profile, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped with error: %v", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}
