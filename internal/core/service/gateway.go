package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
)

// FallbackMode decides which read failures are replaced by fixture data.
type FallbackMode string

const (
	// FallbackUnavailable substitutes fixtures only when the backend cannot
	// be reached. Other failures are returned to the caller.
	FallbackUnavailable FallbackMode = "unavailable"
	// FallbackAny substitutes fixtures for every read failure.
	FallbackAny FallbackMode = "any"
	// FallbackOff never substitutes.
	FallbackOff FallbackMode = "off"
)

// ParseFallbackMode validates a configured mode. Empty means unavailable.
func ParseFallbackMode(s string) (FallbackMode, error) {
	switch m := FallbackMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return FallbackUnavailable, nil
	case FallbackUnavailable, FallbackAny, FallbackOff:
		return m, nil
	}
	return "", fmt.Errorf("unknown fallback mode %q", s)
}

// FallbackRecorder observes degraded-mode decisions (metrics).
type FallbackRecorder interface {
	Fallback(operation string)
	LocalOnly(operation string)
}

type nopRecorder struct{}

func (nopRecorder) Fallback(string)  {}
func (nopRecorder) LocalOnly(string) {}

// Listing is the result of a list read.
type Listing struct {
	Complaints []domain.Complaint
	Origin     domain.Origin
}

// Resolved is the result of a single-complaint read.
type Resolved struct {
	Complaint domain.Complaint
	Origin    domain.Origin
}

// Gateway is the portal's data access layer. It calls the remote API and
// applies the fallback policy on reads; writes are passed through and their
// failures returned so the calling view can decide what to show.
type Gateway struct {
	api      ports.ComplaintAPI
	fixtures ports.FixtureSource
	mode     FallbackMode
	rec      FallbackRecorder
	now      func() time.Time
	log      zerolog.Logger
}

// GatewayOption customises a Gateway.
type GatewayOption func(*Gateway)

// WithRecorder plugs a metrics recorder into the gateway.
func WithRecorder(rec FallbackRecorder) GatewayOption {
	return func(g *Gateway) {
		if rec != nil {
			g.rec = rec
		}
	}
}

// WithClock overrides time.Now, used to place fixture timestamps.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGateway(api ports.ComplaintAPI, fixtures ports.FixtureSource, mode FallbackMode, log zerolog.Logger, opts ...GatewayOption) *Gateway {
	if mode == "" {
		mode = FallbackUnavailable
	}
	g := &Gateway{
		api:      api,
		fixtures: fixtures,
		mode:     mode,
		rec:      nopRecorder{},
		now:      time.Now,
		log:      log.With().Str("component", "gateway").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Now is the gateway clock. Views stamp local mutations with it.
func (g *Gateway) Now() time.Time {
	return g.now().UTC()
}

// Mode returns the configured fallback policy.
func (g *Gateway) Mode() FallbackMode {
	return g.mode
}

// FallsBackOn reports whether a read failing with err is answered from the
// fixtures.
func (g *Gateway) FallsBackOn(err error) bool {
	switch g.mode {
	case FallbackAny:
		return true
	case FallbackUnavailable:
		return domain.KindOf(err) == domain.KindUnavailable
	default:
		return false
	}
}

// List returns every complaint from the backend, or the fixture set when the
// policy allows it.
func (g *Gateway) List(ctx context.Context) (*Listing, error) {
	complaints, err := g.api.List(ctx)
	if err == nil {
		if complaints == nil {
			complaints = []domain.Complaint{}
		}
		return &Listing{Complaints: complaints, Origin: domain.OriginLive}, nil
	}

	if !g.FallsBackOn(err) {
		g.log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("list complaints failed")
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	g.log.Warn().Err(err).Str("mode", string(g.mode)).Msg("list complaints failed, serving fixtures")
	g.rec.Fallback("list")
	return &Listing{Complaints: g.fixtures.Complaints(g.Now()), Origin: domain.OriginFixture}, nil
}

// Get resolves one complaint. When the policy allows a fallback and no
// fixture carries the id, domain.ErrComplaintNotFound is returned.
func (g *Gateway) Get(ctx context.Context, id string) (*Resolved, error) {
	c, err := g.api.Get(ctx, id)
	if err == nil {
		return &Resolved{Complaint: *c, Origin: domain.OriginLive}, nil
	}

	if !g.FallsBackOn(err) {
		if domain.KindOf(err) != domain.KindNotFound {
			g.log.Error().Err(err).Str("id", id).Msg("get complaint failed")
		}
		return nil, fmt.Errorf("get complaint %s: %w", id, err)
	}

	g.rec.Fallback("get")
	for _, f := range g.fixtures.Complaints(g.Now()) {
		if f.ID == id {
			g.log.Warn().Err(err).Str("id", id).Msg("get complaint failed, serving fixture")
			return &Resolved{Complaint: f, Origin: domain.OriginFixture}, nil
		}
	}
	g.log.Warn().Err(err).Str("id", id).Msg("get complaint failed and no fixture matches")
	return nil, fmt.Errorf("get complaint %s: %w", id, domain.ErrComplaintNotFound)
}

// Create submits a new complaint. Failures are never masked.
func (g *Gateway) Create(ctx context.Context, in domain.NewComplaint) error {
	if err := g.api.Create(ctx, in); err != nil {
		g.log.Error().Err(err).Str("category", string(in.Category)).Msg("create complaint failed")
		return fmt.Errorf("create complaint: %w", err)
	}
	g.log.Info().Str("category", string(in.Category)).Str("priority", string(in.Priority)).Msg("complaint submitted")
	return nil
}

// UpdateStatus asks the backend to change a status. Callers keep the change
// in their local copy even when this returns an error.
func (g *Gateway) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, note string) error {
	if !status.Valid() {
		return fmt.Errorf("update complaint %s: %w: %q", id, domain.ErrInvalidStatus, status)
	}
	if err := g.api.UpdateStatus(ctx, id, status, strings.TrimSpace(note)); err != nil {
		g.log.Warn().Err(err).Str("id", id).Str("status", string(status)).Msg("status update not persisted, keeping local change")
		g.rec.LocalOnly("update_status")
		return fmt.Errorf("update complaint %s: %w", id, err)
	}
	g.log.Info().Str("id", id).Str("status", string(status)).Msg("status updated")
	return nil
}

// Notifications returns the demo notifications. The backend exposes no
// notification endpoint.
func (g *Gateway) Notifications() []domain.Notification {
	return g.fixtures.Notifications(g.Now())
}
