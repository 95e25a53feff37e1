package handler

import (
	"time"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/view"
)

// loginRequest picks the identity to sign in as; every field is optional.
type loginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"  validate:"omitempty,role"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Session   domain.Session `json:"session"`
}

type sessionResponse struct {
	Session domain.Session   `json:"session"`
	Nav     []domain.NavItem `json:"nav"`
	Home    string           `json:"home"`
}

// statusRequest moves a complaint on the detail screen.
type statusRequest struct {
	Status domain.ComplaintStatus `json:"status" validate:"required,status"`
}

type transitionResponse struct {
	Complaint domain.Complaint `json:"complaint"`
	Synced    bool             `json:"synced"`
}

// menuRequest opens the row context menu at a pointer position.
type menuRequest struct {
	ComplaintID string `json:"complaintId" validate:"required"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"viewportWidth"  validate:"gte=0"`
	Height      int    `json:"viewportHeight" validate:"gte=0"`
}

// editorRequest changes the editor; absent fields are left alone.
type editorRequest struct {
	Status *domain.ComplaintStatus `json:"status,omitempty"`
	Note   *string                 `json:"note,omitempty"`
}

type readResponse struct {
	Link string `json:"link"`
}

type filterQuery struct {
	Search   *string
	Status   *string
	Priority *string
	Reload   bool
}

// apply merges the query parameters that are present into f.
func (q filterQuery) apply(f view.Filter) view.Filter {
	if q.Search != nil {
		f.Search = *q.Search
	}
	if q.Status != nil {
		f.Status = view.StatusFilter(*q.Status)
	}
	if q.Priority != nil {
		f.Priority = view.PriorityFilter(*q.Priority)
	}
	return f
}

func (q filterQuery) changes() bool {
	return q.Search != nil || q.Status != nil || q.Priority != nil
}
