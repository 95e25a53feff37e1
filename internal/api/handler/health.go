package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health (liveness).
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Pinger checks that the complaints backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FallbackPolicy tells whether a failed read would be served from fixtures.
type FallbackPolicy interface {
	FallsBackOn(err error) bool
}

// ReadinessHandler handles GET /health/ready. The portal is still ready when
// the backend is down but reads fall back to fixtures; it reports "degraded"
// then.
type ReadinessHandler struct {
	backend Pinger
	policy  FallbackPolicy
	timeout time.Duration
}

func NewReadinessHandler(backend Pinger, policy FallbackPolicy) *ReadinessHandler {
	return &ReadinessHandler{backend: backend, policy: policy, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness pings the backend.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.backend.Ping(ctx)
	if err == nil {
		return c.JSON(http.StatusOK, readinessResponse{
			Status:       "ok",
			Dependencies: map[string]dependencyStatus{"complaints_backend": {Status: "ok"}},
		})
	}

	deps := map[string]dependencyStatus{
		"complaints_backend": {Status: "unhealthy", Error: err.Error()},
	}
	if h.policy.FallsBackOn(err) {
		return c.JSON(http.StatusOK, readinessResponse{Status: "degraded", Dependencies: deps})
	}
	return c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "unavailable", Dependencies: deps})
}
