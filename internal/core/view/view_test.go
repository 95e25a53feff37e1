package view

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/service"
	"github.com/brocode/complaint-portal/internal/infrastructure/fixtures"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

var errDown = errors.Join(domain.ErrBackendUnavailable, errors.New("dial tcp: connection refused"))

// fakeAPI is an in-memory complaints backend.
type fakeAPI struct {
	complaints []domain.Complaint
	down       bool
	updateErr  error
	createErr  error

	listCalls   int
	createCalls []domain.NewComplaint
	updateCalls int
}

func (a *fakeAPI) List(context.Context) ([]domain.Complaint, error) {
	a.listCalls++
	if a.down {
		return nil, errDown
	}
	out := make([]domain.Complaint, len(a.complaints))
	for i, c := range a.complaints {
		out[i] = c.Clone()
	}
	return out, nil
}

func (a *fakeAPI) Get(_ context.Context, id string) (*domain.Complaint, error) {
	if a.down {
		return nil, errDown
	}
	for _, c := range a.complaints {
		if c.ID == id {
			cp := c.Clone()
			return &cp, nil
		}
	}
	return nil, domain.NewAPIError(http.StatusNotFound, "complaint not found", domain.ErrComplaintNotFound)
}

func (a *fakeAPI) Create(_ context.Context, in domain.NewComplaint) error {
	a.createCalls = append(a.createCalls, in)
	if a.down {
		return errDown
	}
	return a.createErr
}

func (a *fakeAPI) UpdateStatus(context.Context, string, domain.ComplaintStatus, string) error {
	a.updateCalls++
	if a.down {
		return errDown
	}
	return a.updateErr
}

func newSource(api *fakeAPI) *service.Gateway {
	return service.NewGateway(api, fixtures.New(), service.FallbackUnavailable, zerolog.Nop(),
		service.WithClock(func() time.Time { return testNow }))
}

func offSource(api *fakeAPI) *service.Gateway {
	return service.NewGateway(api, fixtures.New(), service.FallbackOff, zerolog.Nop(),
		service.WithClock(func() time.Time { return testNow }))
}

var (
	studentSession = domain.Session{UserID: "u1", Name: "Ana Student", Role: domain.RoleStudent}
	staffSession   = domain.Session{UserID: "s1", Name: "Maya Staff", Role: domain.RoleStaff}
	adminSession   = domain.Session{UserID: "a1", Role: domain.RoleAdmin}
)

func sample(id string, status domain.ComplaintStatus, priority domain.Priority) domain.Complaint {
	created := testNow.Add(-48 * time.Hour)
	return domain.Complaint{
		ID:          id,
		Title:       "Complaint " + id,
		Description: "details of " + id,
		Category:    domain.CategoryOther,
		Status:      status,
		Priority:    priority,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}
