package view

import (
	"context"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// ComplaintsState is what the complaints list renders.
type ComplaintsState struct {
	Complaints []domain.Complaint `json:"complaints"`
	Total      int                `json:"total"`
	Filter     Filter             `json:"filter"`
	Origin     domain.Origin      `json:"origin,omitempty"`
	Loaded     bool               `json:"loaded"`
}

// ComplaintsView is the searchable complaint list.
type ComplaintsView struct {
	src     Source
	session domain.Session

	all     []domain.Complaint
	visible []domain.Complaint
	filter  Filter
	origin  domain.Origin
	loaded  bool
}

func NewComplaintsView(src Source, session domain.Session) *ComplaintsView {
	return &ComplaintsView{
		src:     src,
		session: session,
		filter:  Filter{Status: StatusAll, Priority: PriorityAll},
		visible: []domain.Complaint{},
	}
}

// SetSession replaces the identity the view acts for.
func (v *ComplaintsView) SetSession(s domain.Session) { v.session = s }

// Load fetches the complaint set and recomputes the visible subset. On error
// the previously loaded set is kept.
func (v *ComplaintsView) Load(ctx context.Context) error {
	listing, err := v.src.List(ctx)
	if err != nil {
		return err
	}
	v.all = listing.Complaints
	v.origin = listing.Origin
	v.loaded = true
	v.recompute()
	return nil
}

// Loaded reports whether a load has succeeded at least once.
func (v *ComplaintsView) Loaded() bool { return v.loaded }

func (v *ComplaintsView) Filter() Filter { return v.filter }

// SetFilter replaces the whole filter. Invalid values leave the current
// filter untouched.
func (v *ComplaintsView) SetFilter(f Filter) error {
	next, err := normalizeFilter(f)
	if err != nil {
		return err
	}
	v.filter = next
	v.recompute()
	return nil
}

func (v *ComplaintsView) SetSearch(q string) {
	v.filter.Search = q
	v.recompute()
}

func (v *ComplaintsView) SetStatusFilter(s StatusFilter) error {
	f := v.filter
	f.Status = s
	return v.SetFilter(f)
}

func (v *ComplaintsView) SetPriorityFilter(p PriorityFilter) error {
	f := v.filter
	f.Priority = p
	return v.SetFilter(f)
}

// Visible returns a copy of the filtered complaints.
func (v *ComplaintsView) Visible() []domain.Complaint {
	out := make([]domain.Complaint, len(v.visible))
	copy(out, v.visible)
	return out
}

func (v *ComplaintsView) State() ComplaintsState {
	return ComplaintsState{
		Complaints: v.Visible(),
		Total:      len(v.all),
		Filter:     v.filter,
		Origin:     v.origin,
		Loaded:     v.loaded,
	}
}

func (v *ComplaintsView) recompute() {
	v.visible = Apply(v.all, v.filter)
}

// normalizeFilter validates f. Empty status or priority means All.
func normalizeFilter(f Filter) (Filter, error) {
	if f.Status == "" {
		f.Status = StatusAll
	}
	if f.Priority == "" {
		f.Priority = PriorityAll
	}
	if _, err := ParseStatusFilter(string(f.Status)); err != nil {
		return Filter{}, err
	}
	if _, err := ParsePriorityFilter(string(f.Priority)); err != nil {
		return Filter{}, err
	}
	return f, nil
}
