package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/brocode/complaint-portal/internal/api/handler"
	"github.com/brocode/complaint-portal/internal/api/middleware"
	"github.com/brocode/complaint-portal/internal/api/workspace"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/service"
	"github.com/brocode/complaint-portal/internal/core/view"
)

// Deps are the collaborators of the portal API.
type Deps struct {
	Auth       *service.AuthService
	Source     view.Source
	Workspaces *workspace.Registry
	Backend    handler.Pinger
	Policy     handler.FallbackPolicy
	Log        zerolog.Logger
	// Registry receives the HTTP metrics; nil means the default registerer.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "portal"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		handlerCfg.Gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Operational endpoints (no session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Backend, d.Policy)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/login", authHandler.Login)

	withSession := middleware.Session(d.Auth, d.Auth.Demo())
	e.GET("/session", authHandler.Session, withSession)

	// --- Views ---
	views := handler.NewViewHandler(d.Workspaces, d.Source, d.Log)

	v := e.Group("/views", withSession)
	v.GET("/dashboard", views.GetDashboard)
	v.GET("/complaints", views.ListComplaints)
	v.POST("/complaints", views.CreateComplaint)
	v.GET("/complaints/:id", views.GetComplaint)
	v.POST("/complaints/:id/status", views.TransitionComplaint, middleware.RBAC(domain.RoleStaff, domain.RoleAdmin))
	v.GET("/notifications", views.GetNotifications)
	v.POST("/notifications/:id/read", views.MarkNotificationRead)

	staff := v.Group("/staff", middleware.RBAC(domain.RoleStaff, domain.RoleAdmin))
	staff.GET("", views.GetStaff)
	staff.POST("/menu", views.OpenMenu)
	staff.DELETE("/menu", views.CloseMenu)
	staff.POST("/editor", views.OpenEditor)
	staff.PUT("/editor", views.UpdateEditor)
	staff.DELETE("/editor", views.CancelEditor)
	staff.POST("/editor/submit", views.SubmitEditor)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
