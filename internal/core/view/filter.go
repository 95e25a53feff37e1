package view

import (
	"fmt"
	"strings"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// StatusFilter selects complaints by status. Besides the three statuses it
// accepts All and Active (Pending or In Progress).
type StatusFilter string

const (
	StatusAll    StatusFilter = "All"
	StatusActive StatusFilter = "Active"
)

// ParseStatusFilter validates a status filter value.
func ParseStatusFilter(s string) (StatusFilter, error) {
	f := StatusFilter(s)
	switch {
	case f == StatusAll, f == StatusActive, domain.ComplaintStatus(s).Valid():
		return f, nil
	}
	return "", fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, s)
}

// PriorityFilter selects complaints by priority, or All.
type PriorityFilter string

const PriorityAll PriorityFilter = "All"

// ParsePriorityFilter validates a priority filter value.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	if PriorityFilter(s) == PriorityAll || domain.Priority(s).Valid() {
		return PriorityFilter(s), nil
	}
	return "", fmt.Errorf("%w: priority %q", domain.ErrInvalidFilter, s)
}

// Filter is the combined search, status and priority selection of a list.
// Zero-valued fields select everything.
type Filter struct {
	Search   string         `json:"search"`
	Status   StatusFilter   `json:"status"`
	Priority PriorityFilter `json:"priority"`
}

// Matches reports whether c passes all three predicates. Search is a
// case-insensitive substring test on title, description and category. An
// absent priority matches Medium.
func (f Filter) Matches(c domain.Complaint) bool {
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) &&
			!strings.Contains(strings.ToLower(string(c.Category)), q) {
			return false
		}
	}

	switch f.Status {
	case "", StatusAll:
	case StatusActive:
		if c.Status != domain.StatusPending && c.Status != domain.StatusInProgress {
			return false
		}
	default:
		if string(c.Status) != string(f.Status) {
			return false
		}
	}

	switch f.Priority {
	case "", PriorityAll:
	default:
		if string(domain.NormalizePriority(c.Priority)) != string(f.Priority) {
			return false
		}
	}
	return true
}

// Apply returns the complaints that match f, in their original order. The
// result is never nil.
func Apply(complaints []domain.Complaint, f Filter) []domain.Complaint {
	out := make([]domain.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
