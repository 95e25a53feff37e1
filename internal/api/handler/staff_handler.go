package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/view"
)

// staffView runs fn against the caller's staff dashboard, loading it first
// when this session has not fetched it yet.
func (h *ViewHandler) staffView(c echo.Context, fn func(d *view.StaffDashboard) error) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	ws, release := h.reg.Acquire(s)
	defer release()

	d, err := ws.Staff()
	if err != nil {
		return err
	}
	if !d.Loaded() {
		if err := d.Load(upstreamContext(c, s)); err != nil {
			return err
		}
	}
	return fn(d)
}

// GetStaff renders the staff dashboard.
//
// @Summary      Staff dashboard
// @Description  Filters default to status=Active and priority=All.
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Case-insensitive text search"
// @Param        status    query     string  false  "All, Active, Pending, In Progress or Resolved"
// @Param        priority  query     string  false  "All, Low, Medium, High or Urgent"
// @Param        reload    query     bool    false  "Fetch again"
// @Success      200       {object}  view.StaffState
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /views/staff [get]
func (h *ViewHandler) GetStaff(c echo.Context) error {
	q, err := parseFilterQuery(c)
	if err != nil {
		return err
	}
	s, _ := ctxSession(c)
	return h.staffView(c, func(d *view.StaffDashboard) error {
		if q.Reload {
			if err := d.Load(upstreamContext(c, s)); err != nil {
				return err
			}
		}
		if q.changes() {
			if err := d.SetFilter(q.apply(d.Filter())); err != nil {
				return err
			}
		}
		return c.JSON(http.StatusOK, d.State())
	})
}

// OpenMenu opens the context menu of a row.
//
// @Summary      Open row menu
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuRequest  true  "Row and pointer position"
// @Success      200   {object}  view.ContextMenu
// @Failure      404   {object}  map[string]string
// @Router       /views/staff/menu [post]
func (h *ViewHandler) OpenMenu(c echo.Context) error {
	var req menuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return h.staffView(c, func(d *view.StaffDashboard) error {
		m, err := d.OpenContextMenu(req.ComplaintID,
			view.Point{X: req.X, Y: req.Y},
			view.Viewport{Width: req.Width, Height: req.Height})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, m)
	})
}

// CloseMenu dismisses the row menu.
//
// @Summary      Close row menu
// @Tags         staff
// @Security     BearerAuth
// @Success      204
// @Router       /views/staff/menu [delete]
func (h *ViewHandler) CloseMenu(c echo.Context) error {
	return h.staffView(c, func(d *view.StaffDashboard) error {
		d.CloseContextMenu()
		return c.NoContent(http.StatusNoContent)
	})
}

// OpenEditor opens the status editor from the row menu.
//
// @Summary      Edit from menu
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view.Editor
// @Failure      409  {object}  map[string]string
// @Router       /views/staff/editor [post]
func (h *ViewHandler) OpenEditor(c echo.Context) error {
	return h.staffView(c, func(d *view.StaffDashboard) error {
		e, err := d.EditFromMenu()
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, e)
	})
}

// UpdateEditor changes the editor's status or note.
//
// @Summary      Change editor fields
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editorRequest  true  "Fields to change"
// @Success      200   {object}  view.Editor
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /views/staff/editor [put]
func (h *ViewHandler) UpdateEditor(c echo.Context) error {
	var req editorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.staffView(c, func(d *view.StaffDashboard) error {
		if d.Editor() == nil {
			return domain.ErrNothingToSubmit
		}
		if req.Status != nil {
			if err := d.SetEditorStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.Note != nil {
			if err := d.SetEditorNote(*req.Note); err != nil {
				return err
			}
		}
		return c.JSON(http.StatusOK, d.Editor())
	})
}

// CancelEditor closes the editor without changes.
//
// @Summary      Cancel edit
// @Tags         staff
// @Security     BearerAuth
// @Success      204
// @Router       /views/staff/editor [delete]
func (h *ViewHandler) CancelEditor(c echo.Context) error {
	return h.staffView(c, func(d *view.StaffDashboard) error {
		d.CancelEdit()
		return c.NoContent(http.StatusNoContent)
	})
}

// SubmitEditor sends the editor to the backend.
//
// @Summary      Submit status update
// @Description  The change is applied to the dashboard even when the backend does not persist it; synced=false then.
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  transitionResponse
// @Failure      409  {object}  map[string]string
// @Router       /views/staff/editor/submit [post]
func (h *ViewHandler) SubmitEditor(c echo.Context) error {
	s, _ := ctxSession(c)
	return h.staffView(c, func(d *view.StaffDashboard) error {
		updated, err := d.SubmitEdit(upstreamContext(c, s))
		if err != nil {
			return err
		}
		if updated.Sync == domain.SyncLocalOnly {
			h.log.Warn().Str("id", updated.ID).Str("status", string(updated.Status)).Msg("status kept locally only")
		}
		return c.JSON(http.StatusOK, transitionResponse{Complaint: updated, Synced: updated.Sync == domain.SyncSynced})
	})
}
