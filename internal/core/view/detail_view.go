package view

import (
	"context"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

// DetailStatus is the lifecycle of a DetailView.
type DetailStatus string

const (
	DetailEmpty    DetailStatus = "empty"
	DetailReady    DetailStatus = "ready"
	DetailNotFound DetailStatus = "not_found"
	DetailFailed   DetailStatus = "failed"
)

// DetailState is what the detail screen renders.
type DetailState struct {
	Status    DetailStatus             `json:"status"`
	Complaint *domain.Complaint        `json:"complaint,omitempty"`
	Origin    domain.Origin            `json:"origin,omitempty"`
	Actions   []domain.ComplaintStatus `json:"actions"`
}

// DetailView shows one complaint and, for staff, the status transitions.
type DetailView struct {
	src     Source
	session domain.Session

	status    DetailStatus
	complaint domain.Complaint
	origin    domain.Origin
}

func NewDetailView(src Source, session domain.Session) *DetailView {
	return &DetailView{src: src, session: session, status: DetailEmpty}
}

func (v *DetailView) SetSession(s domain.Session) { v.session = s }

// Load resolves id. A complaint that cannot be found puts the view in the
// terminal NotFound state; the error is returned as well.
func (v *DetailView) Load(ctx context.Context, id string) error {
	res, err := v.src.Get(ctx, id)
	if err != nil {
		v.complaint = domain.Complaint{}
		v.origin = ""
		if domain.KindOf(err) == domain.KindNotFound {
			v.status = DetailNotFound
		} else {
			v.status = DetailFailed
		}
		return err
	}
	v.complaint = res.Complaint
	v.origin = res.Origin
	v.status = DetailReady
	return nil
}

func (v *DetailView) Status() DetailStatus { return v.status }

// ID returns the id of the loaded complaint, or "".
func (v *DetailView) ID() string {
	if v.status != DetailReady {
		return ""
	}
	return v.complaint.ID
}

// Complaint returns the loaded complaint.
func (v *DetailView) Complaint() (domain.Complaint, bool) {
	return v.complaint, v.status == DetailReady
}

// Actions lists the statuses the session may move the complaint to.
func (v *DetailView) Actions() []domain.ComplaintStatus {
	if !v.session.CanManage() || v.status != DetailReady {
		return []domain.ComplaintStatus{}
	}
	return append([]domain.ComplaintStatus(nil), domain.Statuses...)
}

// Transition moves the complaint to status. The change is applied locally
// even when the backend rejects it; Sync on the result tells which.
func (v *DetailView) Transition(ctx context.Context, status domain.ComplaintStatus) (domain.Complaint, error) {
	if !v.session.CanManage() {
		return domain.Complaint{}, domain.ErrForbidden
	}
	if v.status != DetailReady {
		return domain.Complaint{}, domain.ErrComplaintNotFound
	}
	if !status.Valid() {
		return domain.Complaint{}, domain.ErrInvalidStatus
	}

	remoteErr := v.src.UpdateStatus(ctx, v.complaint.ID, status, "")
	applyLocally(&v.complaint, domain.StatusChange{Status: status, At: v.src.Now()}, remoteErr)
	return v.complaint, nil
}

func (v *DetailView) State() DetailState {
	st := DetailState{Status: v.status, Origin: v.origin, Actions: v.Actions()}
	if v.status == DetailReady {
		c := v.complaint
		st.Complaint = &c
	}
	return st
}
