package domain

import "fmt"

// Role is the only authorization axis of the portal.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a claim or config value into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Session is the identity every view is constructed with.
type Session struct {
	UserID string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`

	// Token is the bearer credential forwarded to the backend, if any.
	Token string `json:"-"`
}

// CanManage reports whether the session sees the staff workflow.
func (s Session) CanManage() bool {
	switch s.Role {
	case RoleStaff, RoleAdmin:
		return true
	case RoleStudent:
		return false
	}
	return false
}

// NoteAuthor is the name stamped on notes written by this session.
func (s Session) NoteAuthor() string {
	if s.Name == "" {
		return DefaultNoteAuthor
	}
	return s.Name
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

const (
	PathDashboard    = "/dashboard"
	PathComplaints   = "/complaints"
	PathNewComplaint = "/complaints/new"
	PathStaff        = "/staff"
)

// NavItems returns the navigation visible to the session's role. Admins only
// get the staff portal.
func (s Session) NavItems() []NavItem {
	switch s.Role {
	case RoleAdmin:
		return []NavItem{{Path: PathStaff, Label: "Staff Portal"}}
	case RoleStaff:
		return append(studentNav(), NavItem{Path: PathStaff, Label: "Staff Portal"})
	default:
		return studentNav()
	}
}

func studentNav() []NavItem {
	return []NavItem{
		{Path: PathDashboard, Label: "Dashboard"},
		{Path: PathComplaints, Label: "My Complaints"},
		{Path: PathNewComplaint, Label: "New Complaint"},
	}
}

// HomePath is where the index route sends the session.
func (s Session) HomePath() string {
	if s.CanManage() {
		return PathStaff
	}
	return PathDashboard
}

// ComplaintPath links to a complaint's detail view.
func ComplaintPath(id string) string {
	return PathComplaints + "/" + id
}
