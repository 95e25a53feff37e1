package ports

import (
	"context"
	"time"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// ComplaintAPI is the remote complaints backend as seen by the portal.
// Implementations classify failures with the sentinel errors of the domain
// package (see domain.KindOf); they never substitute data themselves.
type ComplaintAPI interface {
	// List returns every complaint visible to the caller, unfiltered.
	List(ctx context.Context) ([]domain.Complaint, error)
	Get(ctx context.Context, id string) (*domain.Complaint, error)
	Create(ctx context.Context, in domain.NewComplaint) error
	// UpdateStatus changes the status and appends note when it is non-empty.
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, note string) error
}

// FixtureSource provides the static demo dataset used when the backend is
// unreachable.
type FixtureSource interface {
	Complaints(now time.Time) []domain.Complaint
	Notifications(now time.Time) []domain.Notification
}
