package domain

import (
	"strings"
	"time"
)

// ComplaintStatus represents the triage state of a complaint.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

// Statuses lists every status in progress order.
var Statuses = []ComplaintStatus{StatusPending, StatusInProgress, StatusResolved}

// Valid reports whether s is one of the enumerated statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Display returns the status a renderer should show. Unknown values coming
// from the backend are shown as Pending rather than rejected.
func (s ComplaintStatus) Display() ComplaintStatus {
	if s.Valid() {
		return s
	}
	return StatusPending
}

// Category is the fixed set of complaint subjects.
type Category string

const (
	CategoryMentor         Category = "Mentor Issue"
	CategoryTask           Category = "Task Issue"
	CategoryFacilities     Category = "Facilities"
	CategoryPeer           Category = "Peer Issue"
	CategoryAdministrative Category = "Administrative"
	CategoryOther          Category = "Other"
)

// Categories lists every known category in form order.
var Categories = []Category{
	CategoryMentor,
	CategoryTask,
	CategoryFacilities,
	CategoryPeer,
	CategoryAdministrative,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Priority is how urgently a complaint should be handled.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities lists the priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of Priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// NormalizePriority maps an absent priority to Medium. Any other value is
// returned unchanged.
func NormalizePriority(p Priority) Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// SyncState tells whether the local copy of a complaint matches what the
// backend acknowledged.
type SyncState string

const (
	SyncSynced    SyncState = "synced"
	SyncLocalOnly SyncState = "local_only"
)

// Submitter identifies the student who filed a complaint.
type Submitter struct {
	ID    string `json:"_id"   bson:"id"`
	Name  string `json:"name"  bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Note is a staff remark appended when the status changes.
type Note struct {
	Text      string    `json:"note"      bson:"note"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	AddedBy   string    `json:"addedBy"   bson:"added_by"`
}

// Complaint is the record shared by every view.
type Complaint struct {
	ID          string          `json:"_id"               bson:"_id"`
	Title       string          `json:"title"             bson:"title"`
	Description string          `json:"description"       bson:"description"`
	Category    Category        `json:"category"          bson:"category"`
	Status      ComplaintStatus `json:"status"            bson:"status"`
	Priority    Priority        `json:"priority,omitempty" bson:"priority,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"         bson:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt"         bson:"updated_at"`
	User        Submitter       `json:"user"              bson:"user"`
	Notes       []Note          `json:"notes,omitempty"   bson:"notes,omitempty"`

	// Sync is only set by the portal on records it mutated locally.
	Sync SyncState `json:"sync,omitempty" bson:"-"`
}

// Clone returns a deep copy so callers can mutate notes without aliasing.
func (c Complaint) Clone() Complaint {
	out := c
	if c.Notes != nil {
		out.Notes = make([]Note, len(c.Notes))
		copy(out.Notes, c.Notes)
	}
	return out
}

// NewComplaint carries the fields a student submits.
type NewComplaint struct {
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// StatusChange is a status update requested by staff.
type StatusChange struct {
	Status ComplaintStatus
	Note   string
	Author string
	At     time.Time
}

// DefaultNoteAuthor is recorded when the acting user has no display name.
const DefaultNoteAuthor = "Staff"

// ApplyStatusChange mutates c in place: the status is replaced, UpdatedAt is
// bumped (never before CreatedAt) and a note is appended only when its
// trimmed text is non-empty.
func (c *Complaint) ApplyStatusChange(ch StatusChange) {
	c.Status = ch.Status

	at := ch.At
	if at.Before(c.CreatedAt) {
		at = c.CreatedAt
	}
	c.UpdatedAt = at

	text := strings.TrimSpace(ch.Note)
	if text == "" {
		return
	}
	author := ch.Author
	if author == "" {
		author = DefaultNoteAuthor
	}
	notes := make([]Note, len(c.Notes), len(c.Notes)+1)
	copy(notes, c.Notes)
	c.Notes = append(notes, Note{Text: text, CreatedAt: at, AddedBy: author})
}

// StatusCounts summarises a complaint set by status.
type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

// CountByStatus tallies raw status values; unknown statuses only count
// towards Total.
func CountByStatus(complaints []Complaint) StatusCounts {
	counts := StatusCounts{Total: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case StatusPending:
			counts.Pending++
		case StatusInProgress:
			counts.InProgress++
		case StatusResolved:
			counts.Resolved++
		}
	}
	return counts
}

// Origin says where a set of complaints came from.
type Origin string

const (
	OriginLive    Origin = "live"
	OriginFixture Origin = "fixture"
)
