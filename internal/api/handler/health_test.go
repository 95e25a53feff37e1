package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubPolicy bool

func (p stubPolicy) FallsBackOn(error) bool { return bool(p) }

func readiness(t *testing.T, h *ReadinessHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestReadiness(t *testing.T) {
	down := errors.New("dial tcp: connection refused")

	tests := []struct {
		name       string
		pingErr    error
		fallback   bool
		wantCode   int
		wantStatus string
	}{
		{"backend up", nil, false, http.StatusOK, `"status":"ok"`},
		{"backend down, fixtures served", down, true, http.StatusOK, `"status":"degraded"`},
		{"backend down, no fallback", down, false, http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := readiness(t, NewReadinessHandler(stubPinger{tt.pingErr}, stubPolicy(tt.fallback)))
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantStatus) {
				t.Fatalf("expected %s in %s", tt.wantStatus, rec.Body.String())
			}
		})
	}
}
