package ports

import (
	"context"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// CreateComplaintInput carries a submission received by the reference backend.
type CreateComplaintInput struct {
	Title          string
	Category       domain.Category
	Description    string
	Priority       domain.Priority
	Submitter      domain.Submitter
	IdempotencyKey string
}

// CreateComplaintResult is returned after a submission.
type CreateComplaintResult struct {
	Complaint *domain.Complaint
	// AlreadyExisted is true when the Idempotency-Key was seen before.
	AlreadyExisted bool
}

// UpdateStatusInput carries a status change received by the reference backend.
type UpdateStatusInput struct {
	ID     string
	Status domain.ComplaintStatus
	Note   string
	Author string
}

// Caller identifies who is asking; students only see their own complaints.
type Caller struct {
	UserID string
	Role   domain.Role
}

// ComplaintService defines the use cases of the reference backend.
type ComplaintService interface {
	Create(ctx context.Context, in CreateComplaintInput) (*CreateComplaintResult, error)
	Get(ctx context.Context, caller Caller, id string) (*domain.Complaint, error)
	List(ctx context.Context, caller Caller) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, caller Caller, in UpdateStatusInput) (*domain.Complaint, error)
	// SeedIfEmpty inserts fixtures into an empty store and reports how many
	// records were written.
	SeedIfEmpty(ctx context.Context, fixtures []domain.Complaint) (int, error)
}
