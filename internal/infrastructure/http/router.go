// Package http wires the reference complaints backend served by complaintsd.
package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brocode/complaint-portal/internal/api"
	apimiddleware "github.com/brocode/complaint-portal/internal/api/middleware"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
	"github.com/brocode/complaint-portal/internal/infrastructure/http/handlers"
)

// Deps are the collaborators of the backend API.
type Deps struct {
	DB         *mongo.Database
	Redis      redis.Cmdable
	Complaints ports.ComplaintService
	// Tokens verifies bearer tokens. Nil disables auth: every request is
	// anonymous and listings are not scoped.
	Tokens apimiddleware.TokenParser
	Log    zerolog.Logger
	// Registry receives the HTTP metrics; nil means the default registerer.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			d.Log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "backend"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		handlerCfg.Gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))

	// --- Complaints ---
	complaintHandler := handlers.NewComplaintHandler(d.Complaints)

	v1 := e.Group("/api/v1")
	if d.Tokens != nil {
		v1.Use(apimiddleware.Session(d.Tokens, domain.Session{}))
	}
	v1.GET("/complaints", complaintHandler.List)
	v1.POST("/complaints", complaintHandler.Create)
	v1.GET("/complaints/:id", complaintHandler.Get)
	v1.PATCH("/complaints/:id", complaintHandler.UpdateStatus)

	return e
}
