package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/api/middleware"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub service
// ---------------------------------------------------------------------------

type stubService struct {
	created    []ports.CreateComplaintInput
	keys       map[string]*domain.Complaint
	lastCaller ports.Caller
	lastUpdate ports.UpdateStatusInput
	err        error
}

func newStubService() *stubService {
	return &stubService{keys: map[string]*domain.Complaint{}}
}

func (s *stubService) Create(_ context.Context, in ports.CreateComplaintInput) (*ports.CreateComplaintResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if c, ok := s.keys[in.IdempotencyKey]; ok && in.IdempotencyKey != "" {
		return &ports.CreateComplaintResult{Complaint: c, AlreadyExisted: true}, nil
	}
	s.created = append(s.created, in)
	c := &domain.Complaint{ID: "c-1", Title: in.Title, Category: in.Category, Status: domain.StatusPending, User: in.Submitter}
	s.keys[in.IdempotencyKey] = c
	return &ports.CreateComplaintResult{Complaint: c}, nil
}

func (s *stubService) Get(_ context.Context, caller ports.Caller, id string) (*domain.Complaint, error) {
	s.lastCaller = caller
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Complaint{ID: id}, nil
}

func (s *stubService) List(_ context.Context, caller ports.Caller) ([]domain.Complaint, error) {
	s.lastCaller = caller
	return []domain.Complaint{{ID: "1"}, {ID: "2"}}, s.err
}

func (s *stubService) UpdateStatus(_ context.Context, caller ports.Caller, in ports.UpdateStatusInput) (*domain.Complaint, error) {
	s.lastCaller = caller
	s.lastUpdate = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Complaint{ID: in.ID, Status: in.Status}, nil
}

func (s *stubService) SeedIfEmpty(context.Context, []domain.Complaint) (int, error) { return 0, nil }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var student = domain.Session{UserID: "u1", Name: "Ana", Email: "ana@example.edu", Role: domain.RoleStudent}

func newContext(method, target, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		middleware.SetSession(c, *sess)
	}
	return c, rec
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreate_StampsSubmitterAndReplaysKey(t *testing.T) {
	svc := newStubService()
	h := NewComplaintHandler(svc)
	body := `{"title":"Broken tap","category":"Facilities","description":"Leaks"}`

	c, rec := newContext(http.MethodPost, "/api/v1/complaints", body, &student)
	c.Request().Header.Set(headerIdempotencyKey, " key-1 ")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.created) != 1 || svc.created[0].Submitter.ID != "u1" || svc.created[0].IdempotencyKey != "key-1" {
		t.Fatalf("unexpected input: %+v", svc.created)
	}

	var resp struct {
		Data domain.Complaint `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID != "c-1" {
		t.Fatalf("expected envelope with c-1, got %s", rec.Body.String())
	}

	c, rec = newContext(http.MethodPost, "/api/v1/complaints", body, &student)
	c.Request().Header.Set(headerIdempotencyKey, "key-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || len(svc.created) != 1 {
		t.Fatalf("expected replay with 200 and no new record, got %d / %d", rec.Code, len(svc.created))
	}
}

func TestCreate_ServiceErrorIsReturned(t *testing.T) {
	svc := newStubService()
	svc.err = domain.ErrValidation
	h := NewComplaintHandler(svc)

	c, _ := newContext(http.MethodPost, "/api/v1/complaints", `{}`, nil)
	if err := h.Create(c); err != domain.ErrValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestList_PassesCaller(t *testing.T) {
	svc := newStubService()
	h := NewComplaintHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/complaints", "", &student)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.lastCaller.UserID != "u1" || svc.lastCaller.Role != domain.RoleStudent {
		t.Fatalf("unexpected caller: %+v", svc.lastCaller)
	}
	if !strings.Contains(rec.Body.String(), `"data":[`) {
		t.Fatalf("expected data envelope, got %s", rec.Body.String())
	}
}

func TestList_AnonymousIsUnscoped(t *testing.T) {
	svc := newStubService()
	h := NewComplaintHandler(svc)

	c, _ := newContext(http.MethodGet, "/api/v1/complaints", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.lastCaller != (ports.Caller{}) {
		t.Fatalf("expected zero caller, got %+v", svc.lastCaller)
	}
}

func TestUpdateStatus_UsesSessionNameAsAuthor(t *testing.T) {
	svc := newStubService()
	h := NewComplaintHandler(svc)
	staff := domain.Session{UserID: "s1", Name: "Maya", Role: domain.RoleStaff}

	c, rec := newContext(http.MethodPatch, "/api/v1/complaints/7", `{"status":"Resolved","note":"done"}`, &staff)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := ports.UpdateStatusInput{ID: "7", Status: domain.StatusResolved, Note: "done", Author: "Maya"}
	if svc.lastUpdate != want {
		t.Fatalf("got %+v, want %+v", svc.lastUpdate, want)
	}
}

func TestUpdateStatus_AnonymousAuthorIsStaff(t *testing.T) {
	svc := newStubService()
	h := NewComplaintHandler(svc)

	c, _ := newContext(http.MethodPatch, "/api/v1/complaints/7", `{"status":"Pending"}`, nil)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.lastUpdate.Author != domain.DefaultNoteAuthor {
		t.Fatalf("expected default author, got %q", svc.lastUpdate.Author)
	}
}
