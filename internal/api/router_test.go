package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brocode/complaint-portal/internal/api/workspace"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/service"
	"github.com/brocode/complaint-portal/internal/infrastructure/fixtures"
)

var errDown = errors.Join(domain.ErrBackendUnavailable, errors.New("connection refused"))

// downBackend is a complaints backend that cannot be reached.
type downBackend struct {
	creates int
}

func (b *downBackend) List(context.Context) ([]domain.Complaint, error) { return nil, errDown }
func (b *downBackend) Get(context.Context, string) (*domain.Complaint, error) {
	return nil, errDown
}
func (b *downBackend) Create(context.Context, domain.NewComplaint) error {
	b.creates++
	return errDown
}
func (b *downBackend) UpdateStatus(context.Context, string, domain.ComplaintStatus, string) error {
	return errDown
}
func (b *downBackend) Ping(context.Context) error { return errDown }

func newTestRouter(t *testing.T) (http.Handler, *service.AuthService, *downBackend) {
	t.Helper()
	demo := domain.Session{UserID: "demo-1", Name: "Demo Student", Email: "student@example.edu", Role: domain.RoleStudent}
	auth, err := service.NewAuthService("test-secret", time.Hour, demo)
	require.NoError(t, err)

	backend := &downBackend{}
	gw := service.NewGateway(backend, fixtures.New(), service.FallbackUnavailable, zerolog.Nop())
	reg := workspace.NewRegistry(gw, time.Minute, zerolog.Nop())

	e := NewRouter(Deps{
		Auth:       auth,
		Source:     gw,
		Workspaces: reg,
		Backend:    backend,
		Policy:     gw,
		Log:        zerolog.Nop(),
		Registry:   prometheus.NewRegistry(),
	})
	return e, auth, backend
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func staffToken(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	tok, _, _, err := auth.Login(service.LoginInput{Name: "Maya", Email: "maya@example.edu", Role: domain.RoleStaff})
	require.NoError(t, err)
	return tok
}

func TestRouter_Health(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	decode(t, rec, &body)
	assert.Equal(t, "degraded", body["status"])

	rec = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AnonymousIsDemoUser(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/session", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Session domain.Session `json:"session"`
		Home    string         `json:"home"`
	}
	decode(t, rec, &body)
	assert.Equal(t, domain.RoleStudent, body.Session.Role)
	assert.Equal(t, "/dashboard", body.Home)
}

func TestRouter_BadTokenIsRejected(t *testing.T) {
	h, _, _ := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/session", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginValidation(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/auth/login", "", `{"role":"janitor"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", "", `{"role":"staff"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token   string         `json:"token"`
		Session domain.Session `json:"session"`
	}
	decode(t, rec, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, domain.RoleStaff, body.Session.Role)
}

func TestRouter_StudentsCannotReachStaffViews(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/views/staff", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/views/complaints/1/status", "", `{"status":"Resolved"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ComplaintsFallBackToFixtures(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/views/complaints", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st struct {
		Complaints []domain.Complaint `json:"complaints"`
		Total      int                `json:"total"`
		Origin     domain.Origin      `json:"origin"`
	}
	decode(t, rec, &st)
	assert.Equal(t, domain.OriginFixture, st.Origin)
	assert.Equal(t, 12, st.Total)

	rec = do(t, h, http.MethodGet, "/views/complaints?status=Resolved", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &st)
	assert.Len(t, st.Complaints, 4)
	for _, c := range st.Complaints {
		assert.Equal(t, domain.StatusResolved, c.Status)
	}

	rec = do(t, h, http.MethodGet, "/views/complaints?priority=Extreme", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_CreateComplaint(t *testing.T) {
	h, _, backend := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/views/complaints", "", `{"title":"","category":"Other","description":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, backend.creates)

	rec = do(t, h, http.MethodPost, "/views/complaints", "", `{"title":"Broken tap","category":"Facilities","description":"Leaks all day"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, backend.creates)

	var st map[string]any
	decode(t, rec, &st)
	assert.Equal(t, "Failed to submit complaint. Please try again.", st["error"])
}

func TestRouter_StaffEditorFlow(t *testing.T) {
	h, auth, _ := newTestRouter(t)
	tok := staffToken(t, auth)

	rec := do(t, h, http.MethodGet, "/views/staff", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/views/staff/editor", tok, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/views/staff/menu", tok,
		`{"complaintId":"1","x":990,"y":10,"viewportWidth":1024,"viewportHeight":768}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var menu struct {
		Position struct{ X, Y int } `json:"position"`
	}
	decode(t, rec, &menu)
	assert.Equal(t, 824, menu.Position.X)
	assert.Equal(t, 10, menu.Position.Y)

	rec = do(t, h, http.MethodPost, "/views/staff/editor", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/views/staff/editor", tok, `{"status":"Resolved","note":"Fixed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/views/staff/editor/submit", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Complaint domain.Complaint `json:"complaint"`
		Synced    bool             `json:"synced"`
	}
	decode(t, rec, &res)
	assert.False(t, res.Synced)
	assert.Equal(t, domain.StatusResolved, res.Complaint.Status)
	require.NotEmpty(t, res.Complaint.Notes)
	assert.Equal(t, "Fixed", res.Complaint.Notes[len(res.Complaint.Notes)-1].Text)
}

func TestRouter_Notifications(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/views/notifications/2/read", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var read map[string]string
	decode(t, rec, &read)
	assert.Equal(t, "/complaints/2", read["link"])

	rec = do(t, h, http.MethodPost, "/views/notifications/99/read", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_StaffLoginsWithoutEmailKeepSeparateWorkspaces(t *testing.T) {
	h, auth, _ := newTestRouter(t)

	alice, _, _, err := auth.Login(service.LoginInput{Name: "Alice", Role: domain.RoleStaff})
	require.NoError(t, err)
	bob, _, _, err := auth.Login(service.LoginInput{Name: "Bob", Role: domain.RoleStaff})
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/views/staff", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/views/staff/menu", bob,
		`{"complaintId":"1","x":10,"y":10,"viewportWidth":1024,"viewportHeight":768}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/views/staff/editor", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPut, "/views/staff/editor", bob, `{"status":"Resolved","note":"done"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Bob's open menu and editor are not visible from Alice's workspace.
	rec = do(t, h, http.MethodGet, "/views/staff", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state struct {
		Menu   json.RawMessage `json:"menu"`
		Editor json.RawMessage `json:"editor"`
	}
	decode(t, rec, &state)
	assert.Empty(t, state.Menu)
	assert.Empty(t, state.Editor)

	rec = do(t, h, http.MethodPost, "/views/staff/editor/submit", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Complaint domain.Complaint `json:"complaint"`
	}
	decode(t, rec, &res)
	require.NotEmpty(t, res.Complaint.Notes)
	last := res.Complaint.Notes[len(res.Complaint.Notes)-1]
	assert.Equal(t, "done", last.Text)
	assert.Equal(t, "Bob", last.AddedBy)
}
