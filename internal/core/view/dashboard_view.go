package view

import (
	"context"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const recentLimit = 5

// DashboardState is what the student dashboard renders. Redirect is set
// instead for staff and admins.
type DashboardState struct {
	Redirect  string              `json:"redirect,omitempty"`
	Stats     domain.StatusCounts `json:"stats"`
	Recent    []domain.Complaint  `json:"recent"`
	CanCreate bool                `json:"canCreate"`
	Origin    domain.Origin       `json:"origin,omitempty"`
}

// StudentDashboard is the landing page of a student.
type StudentDashboard struct {
	src     Source
	session domain.Session

	complaints []domain.Complaint
	origin     domain.Origin
}

func NewStudentDashboard(src Source, session domain.Session) *StudentDashboard {
	return &StudentDashboard{src: src, session: session}
}

// Load fetches the complaints. Managers are redirected, so nothing is
// fetched for them.
func (d *StudentDashboard) Load(ctx context.Context) error {
	if d.session.CanManage() {
		return nil
	}
	listing, err := d.src.List(ctx)
	if err != nil {
		return err
	}
	d.complaints = listing.Complaints
	d.origin = listing.Origin
	return nil
}

// Recent returns the first complaints in fetch order.
func (d *StudentDashboard) Recent() []domain.Complaint {
	n := min(len(d.complaints), recentLimit)
	return append([]domain.Complaint{}, d.complaints[:n]...)
}

func (d *StudentDashboard) State() DashboardState {
	if d.session.CanManage() {
		return DashboardState{Redirect: domain.PathStaff, Recent: []domain.Complaint{}}
	}
	return DashboardState{
		Stats:     domain.CountByStatus(d.complaints),
		Recent:    d.Recent(),
		CanCreate: d.session.Role == domain.RoleStudent,
		Origin:    d.origin,
	}
}
