// Package workspace keeps the view state of every active session between
// requests. A workspace is locked for the duration of a request so the views
// inside it are only ever used by one goroutine at a time.
package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/api/metrics"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/view"
)

// Workspace holds the views of one session. Views are created on first use.
type Workspace struct {
	mu       sync.Mutex
	src      view.Source
	session  domain.Session
	lastSeen time.Time

	complaints    *view.ComplaintsView
	staff         *view.StaffDashboard
	detail        *view.DetailView
	notifications *view.NotificationsPanel
}

func (w *Workspace) Session() domain.Session { return w.session }

// setSession refreshes the identity held by the workspace and its views, so
// the bearer token and note author always come from the current request.
func (w *Workspace) setSession(s domain.Session) {
	w.session = s
	if w.complaints != nil {
		w.complaints.SetSession(s)
	}
	if w.staff != nil {
		w.staff.SetSession(s)
	}
	if w.detail != nil {
		w.detail.SetSession(s)
	}
}

func (w *Workspace) Complaints() *view.ComplaintsView {
	if w.complaints == nil {
		w.complaints = view.NewComplaintsView(w.src, w.session)
	}
	return w.complaints
}

// Staff returns the staff dashboard, or domain.ErrForbidden.
func (w *Workspace) Staff() (*view.StaffDashboard, error) {
	if w.staff == nil {
		d, err := view.NewStaffDashboard(w.src, w.session)
		if err != nil {
			return nil, err
		}
		w.staff = d
	}
	return w.staff, nil
}

func (w *Workspace) Detail() *view.DetailView {
	if w.detail == nil {
		w.detail = view.NewDetailView(w.src, w.session)
	}
	return w.detail
}

func (w *Workspace) Notifications() *view.NotificationsPanel {
	if w.notifications == nil {
		w.notifications = view.NewNotificationsPanel(w.src)
	}
	return w.notifications
}

// Registry maps sessions to workspaces.
type Registry struct {
	src view.Source
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger

	mu     sync.Mutex
	spaces map[string]*Workspace
	cron   *cron.Cron
}

func NewRegistry(src view.Source, ttl time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		src:    src,
		ttl:    ttl,
		now:    time.Now,
		log:    log.With().Str("component", "workspace").Logger(),
		spaces: make(map[string]*Workspace),
	}
}

// key is the full identity of a session. Logins without an email share the
// demo user ID, so the name and email are part of the key.
func key(s domain.Session) string {
	return string(s.Role) + "\x00" + s.UserID + "\x00" + s.Name + "\x00" + s.Email
}

// Acquire returns the session's workspace locked for the caller. release
// must be called when the request is done.
func (r *Registry) Acquire(s domain.Session) (ws *Workspace, release func()) {
	r.mu.Lock()
	ws, ok := r.spaces[key(s)]
	if !ok {
		ws = &Workspace{src: r.src, session: s}
		r.spaces[key(s)] = ws
		metrics.WorkspacesActive.Set(float64(len(r.spaces)))
		r.log.Debug().Str("user_id", s.UserID).Str("role", string(s.Role)).Msg("workspace created")
	}
	r.mu.Unlock()

	ws.mu.Lock()
	ws.setSession(s)
	ws.lastSeen = r.now()
	return ws, ws.mu.Unlock
}

// Len is the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

// Sweep drops workspaces idle for longer than the TTL. Workspaces in use are
// skipped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for k, ws := range r.spaces {
		if !ws.mu.TryLock() {
			continue
		}
		idle := ws.lastSeen.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(r.spaces, k)
			evicted++
		}
	}

	if evicted > 0 {
		metrics.WorkspacesEvictedTotal.Add(float64(evicted))
		r.log.Info().Int("evicted", evicted).Int("remaining", len(r.spaces)).Msg("idle workspaces evicted")
	}
	metrics.WorkspacesActive.Set(float64(len(r.spaces)))
	return evicted
}

// StartSweeper runs Sweep on a cron schedule such as "@every 1m".
func (r *Registry) StartSweeper(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { r.Sweep() }); err != nil {
		return fmt.Errorf("workspace: sweep schedule %q: %w", spec, err)
	}
	c.Start()
	r.cron = c
	r.log.Info().Str("schedule", spec).Dur("ttl", r.ttl).Msg("workspace sweeper started")
	return nil
}

// StopSweeper stops the schedule and waits for a running sweep, bounded by ctx.
func (r *Registry) StopSweeper(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}
