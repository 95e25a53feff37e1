package ports

import (
	"context"
	"time"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// ListComplaintsFilter scopes a listing. An empty UserID means no scoping
// (staff and admin).
type ListComplaintsFilter struct {
	UserID string
}

// ComplaintRepository defines persistence operations of the reference backend.
type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	// FindByID retrieves a complaint. When userID is non-empty the complaint
	// must also belong to that user.
	FindByID(ctx context.Context, id, userID string) (*domain.Complaint, error)
	// List returns complaints newest first.
	List(ctx context.Context, filter ListComplaintsFilter) ([]domain.Complaint, error)
	// UpdateStatus atomically sets the status and updated_at and appends
	// note when it is not nil. It returns the updated document.
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, at time.Time, note *domain.Note) (*domain.Complaint, error)
	Count(ctx context.Context) (int64, error)
}
