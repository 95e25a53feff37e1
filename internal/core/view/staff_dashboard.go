package view

import (
	"context"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const (
	contextMenuWidth  = 200
	contextMenuHeight = 100
)

// Point is a pointer position in viewport pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Viewport is the size of the client window.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ContextMenu is the right-click menu of a complaint row.
type ContextMenu struct {
	ComplaintID string `json:"complaintId"`
	Position    Point  `json:"position"`
}

// Editor is the status-update dialog.
type Editor struct {
	ComplaintID string                 `json:"complaintId"`
	Status      domain.ComplaintStatus `json:"status"`
	Note        string                 `json:"note"`
	Submitting  bool                   `json:"submitting"`
}

// StaffState is what the staff dashboard renders.
type StaffState struct {
	Complaints []domain.Complaint       `json:"complaints"`
	Stats      domain.StatusCounts      `json:"stats"`
	Filter     Filter                   `json:"filter"`
	Origin     domain.Origin            `json:"origin,omitempty"`
	Menu       *ContextMenu             `json:"menu,omitempty"`
	Editor     *Editor                  `json:"editor,omitempty"`
	Statuses   []domain.ComplaintStatus `json:"statuses"`
}

// StaffDashboard is the staff triage screen: the full complaint list, a
// context menu per row and a status editor.
type StaffDashboard struct {
	src     Source
	session domain.Session

	all     []domain.Complaint
	visible []domain.Complaint
	filter  Filter
	origin  domain.Origin
	loaded  bool

	menu   *ContextMenu
	editor *Editor
}

// NewStaffDashboard returns domain.ErrForbidden for sessions that cannot
// manage complaints.
func NewStaffDashboard(src Source, session domain.Session) (*StaffDashboard, error) {
	if !session.CanManage() {
		return nil, domain.ErrForbidden
	}
	return &StaffDashboard{
		src:     src,
		session: session,
		filter:  Filter{Status: StatusActive, Priority: PriorityAll},
		visible: []domain.Complaint{},
	}, nil
}

// SetSession replaces the identity used as note author on submit.
func (d *StaffDashboard) SetSession(s domain.Session) { d.session = s }

func (d *StaffDashboard) Load(ctx context.Context) error {
	listing, err := d.src.List(ctx)
	if err != nil {
		return err
	}
	d.all = listing.Complaints
	d.origin = listing.Origin
	d.loaded = true
	d.recompute()
	return nil
}

// Loaded reports whether a load has succeeded at least once.
func (d *StaffDashboard) Loaded() bool { return d.loaded }

func (d *StaffDashboard) Filter() Filter { return d.filter }

func (d *StaffDashboard) SetFilter(f Filter) error {
	next, err := normalizeFilter(f)
	if err != nil {
		return err
	}
	d.filter = next
	d.recompute()
	return nil
}

func (d *StaffDashboard) Visible() []domain.Complaint {
	out := make([]domain.Complaint, len(d.visible))
	copy(out, d.visible)
	return out
}

// Stats counts the whole loaded set, not just the visible rows.
func (d *StaffDashboard) Stats() domain.StatusCounts {
	return domain.CountByStatus(d.all)
}

// Complaint returns the loaded copy of a complaint.
func (d *StaffDashboard) Complaint(id string) (domain.Complaint, bool) {
	return findByID(d.all, id)
}

// OpenContextMenu opens the row menu at the pointer, kept inside the
// viewport.
func (d *StaffDashboard) OpenContextMenu(id string, at Point, vp Viewport) (ContextMenu, error) {
	if _, ok := findByID(d.all, id); !ok {
		return ContextMenu{}, domain.ErrComplaintNotFound
	}
	m := ContextMenu{ComplaintID: id, Position: clampMenu(at, vp)}
	d.menu = &m
	return m, nil
}

func clampMenu(at Point, vp Viewport) Point {
	return Point{
		X: max(0, min(at.X, vp.Width-contextMenuWidth)),
		Y: max(0, min(at.Y, vp.Height-contextMenuHeight)),
	}
}

// CloseContextMenu dismisses the menu, e.g. on a click elsewhere.
func (d *StaffDashboard) CloseContextMenu() {
	d.menu = nil
}

func (d *StaffDashboard) Menu() *ContextMenu {
	return d.menu
}

// EditFromMenu opens the editor for the menu's complaint, pre-filled with
// its current status, and closes the menu.
func (d *StaffDashboard) EditFromMenu() (Editor, error) {
	if d.menu == nil {
		return Editor{}, domain.ErrNoSelection
	}
	c, ok := findByID(d.all, d.menu.ComplaintID)
	d.menu = nil
	if !ok {
		return Editor{}, domain.ErrComplaintNotFound
	}
	e := Editor{ComplaintID: c.ID, Status: c.Status}
	d.editor = &e
	return e, nil
}

func (d *StaffDashboard) Editor() *Editor {
	return d.editor
}

func (d *StaffDashboard) SetEditorStatus(s domain.ComplaintStatus) error {
	if d.editor == nil {
		return domain.ErrNothingToSubmit
	}
	if !s.Valid() {
		return domain.ErrInvalidStatus
	}
	d.editor.Status = s
	return nil
}

func (d *StaffDashboard) SetEditorNote(note string) error {
	if d.editor == nil {
		return domain.ErrNothingToSubmit
	}
	d.editor.Note = note
	return nil
}

// CancelEdit closes the editor without changes.
func (d *StaffDashboard) CancelEdit() {
	d.editor = nil
}

// SubmitEdit sends the editor's status and note to the backend and applies
// them to the local copy whatever the outcome. The returned complaint tells
// through Sync whether the backend has the change. Only a missing editor is
// reported as an error.
func (d *StaffDashboard) SubmitEdit(ctx context.Context) (domain.Complaint, error) {
	e := d.editor
	if e == nil || e.Status == "" {
		return domain.Complaint{}, domain.ErrNothingToSubmit
	}
	c, ok := findByID(d.all, e.ComplaintID)
	if !ok {
		d.editor = nil
		return domain.Complaint{}, domain.ErrComplaintNotFound
	}

	e.Submitting = true
	remoteErr := d.src.UpdateStatus(ctx, e.ComplaintID, e.Status, e.Note)

	applyLocally(&c, domain.StatusChange{
		Status: e.Status,
		Note:   e.Note,
		Author: d.session.NoteAuthor(),
		At:     d.src.Now(),
	}, remoteErr)
	replaceByID(d.all, c)

	d.editor = nil
	d.recompute()
	return c, nil
}

func (d *StaffDashboard) State() StaffState {
	return StaffState{
		Complaints: d.Visible(),
		Stats:      d.Stats(),
		Filter:     d.filter,
		Origin:     d.origin,
		Menu:       d.menu,
		Editor:     d.editor,
		Statuses:   domain.Statuses,
	}
}

func (d *StaffDashboard) recompute() {
	d.visible = Apply(d.all, d.filter)
}
