package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	_ "github.com/brocode/complaint-portal/docs"
	"github.com/brocode/complaint-portal/internal/api"
	"github.com/brocode/complaint-portal/internal/api/metrics"
	"github.com/brocode/complaint-portal/internal/api/workspace"
	"github.com/brocode/complaint-portal/internal/core/service"
	"github.com/brocode/complaint-portal/internal/infrastructure/fixtures"
	"github.com/brocode/complaint-portal/internal/infrastructure/restapi"
	"github.com/brocode/complaint-portal/internal/pkg/config"
	"github.com/brocode/complaint-portal/pkg/logger"
)

// @title Complaint Portal API
// @version 1.0
// @description Complaint tracking portal: list, detail, creation form and staff triage.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /auth/login.

func main() {
	ctx := context.Background()

	cfg, err := config.LoadPortal(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "portal"})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portal",
	})

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	demo, err := cfg.DemoUser.Session()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid demo user")
	}
	auth, err := service.NewAuthService(secret, 0, demo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build auth service")
	}

	mode, err := service.ParseFallbackMode(cfg.Upstream.FallbackMode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid FALLBACK_MODE")
	}

	client, err := restapi.New(
		restapi.Config{BaseURL: cfg.Upstream.URL, Timeout: cfg.Upstream.Timeout},
		log,
		restapi.WithCallRecorder(metrics.Recorder{}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid COMPLAINTS_API_URL")
	}

	gateway := service.NewGateway(client, fixtures.New(), mode, log, service.WithRecorder(metrics.Recorder{}))

	workspaces := workspace.NewRegistry(gateway, cfg.Workspace.TTL, log)
	if err := workspaces.StartSweeper(cfg.Workspace.Sweep); err != nil {
		log.Fatal().Err(err).Msg("invalid WORKSPACE_SWEEP")
	}

	e := api.NewRouter(api.Deps{
		Auth:       auth,
		Source:     gateway,
		Workspaces: workspaces,
		Backend:    client,
		Policy:     gateway,
		Log:        log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.Upstream.URL).
			Str("fallback_mode", string(mode)).
			Msg("portal starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	workspaces.StopSweeper(shutdownCtx)
	log.Info().Msg("server stopped")
}
