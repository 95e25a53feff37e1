// Package view holds the stateful screen controllers of the portal. A view is
// built for one session, owns its copy of the data it shows and is not safe
// for concurrent use; the HTTP layer serialises access per session.
package view

import (
	"context"
	"time"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/service"
)

// Source is what the views need from the data access layer. It is satisfied
// by *service.Gateway.
type Source interface {
	List(ctx context.Context) (*service.Listing, error)
	Get(ctx context.Context, id string) (*service.Resolved, error)
	Create(ctx context.Context, in domain.NewComplaint) error
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, note string) error
	Notifications() []domain.Notification
	Now() time.Time
}

var _ Source = (*service.Gateway)(nil)

// applyLocally records a status change on c and flags whether the backend
// accepted it. The change is kept either way.
func applyLocally(c *domain.Complaint, ch domain.StatusChange, remoteErr error) {
	c.ApplyStatusChange(ch)
	if remoteErr != nil {
		c.Sync = domain.SyncLocalOnly
		return
	}
	c.Sync = domain.SyncSynced
}

func replaceByID(list []domain.Complaint, c domain.Complaint) bool {
	for i := range list {
		if list[i].ID == c.ID {
			list[i] = c
			return true
		}
	}
	return false
}

func findByID(list []domain.Complaint, id string) (domain.Complaint, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Complaint{}, false
}
