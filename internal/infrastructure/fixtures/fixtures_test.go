package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

func TestComplaints_ShapeOfDataset(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	set := New().Complaints(now)
	require.Len(t, set, 12)

	counts := domain.CountByStatus(set)
	assert.Equal(t, domain.StatusCounts{Total: 12, Pending: 4, InProgress: 4, Resolved: 4}, counts)

	var resolved []string
	for _, c := range set {
		if c.Status == domain.StatusResolved {
			resolved = append(resolved, c.ID)
		}
	}
	assert.ElementsMatch(t, []string{"3", "7", "9", "12"}, resolved)
}

func TestComplaints_RecordsAreWellFormed(t *testing.T) {
	now := time.Now().UTC()
	seen := map[string]bool{}
	for _, c := range New().Complaints(now) {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true

		assert.True(t, c.Category.Valid(), "category of %s", c.ID)
		assert.True(t, c.Status.Valid(), "status of %s", c.ID)
		assert.True(t, c.Priority.Valid(), "priority of %s", c.ID)
		assert.False(t, c.UpdatedAt.Before(c.CreatedAt), "updatedAt before createdAt on %s", c.ID)
		assert.True(t, c.CreatedAt.Before(now))
		assert.NotEmpty(t, c.User.Name)
	}
}

func TestComplaints_ReturnsIndependentCopies(t *testing.T) {
	now := time.Now()
	first := New().Complaints(now)
	first[0].Status = domain.StatusResolved

	second := New().Complaints(now)
	assert.Equal(t, domain.StatusPending, second[0].Status)
}

func TestNotifications_UnreadAndLinks(t *testing.T) {
	now := time.Now()
	notes := New().Notifications(now)
	require.Len(t, notes, 6)

	unread := 0
	ids := map[string]bool{}
	for _, c := range New().Complaints(now) {
		ids[c.ID] = true
	}
	for _, n := range notes {
		if !n.Read {
			unread++
		}
		assert.True(t, ids[n.ComplaintID], "notification %s links to unknown complaint", n.ID)
	}
	assert.Equal(t, 3, unread)
}
