package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/api/metrics"
	"github.com/brocode/complaint-portal/internal/api/workspace"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/view"
)

// ViewHandler serves the stateful screens. Stateful views live in the
// caller's workspace; the dashboard and the creation form are rebuilt per
// request.
type ViewHandler struct {
	reg *workspace.Registry
	src view.Source
	log zerolog.Logger
}

func NewViewHandler(reg *workspace.Registry, src view.Source, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{reg: reg, src: src, log: log.With().Str("component", "view_handler").Logger()}
}

func parseFilterQuery(c echo.Context) (filterQuery, error) {
	qp := c.QueryParams()
	var q filterQuery
	if vs, ok := qp["search"]; ok {
		q.Search = &vs[0]
	}
	if vs, ok := qp["status"]; ok {
		q.Status = &vs[0]
	}
	if vs, ok := qp["priority"]; ok {
		q.Priority = &vs[0]
	}
	if raw := c.QueryParam("reload"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return filterQuery{}, echo.NewHTTPError(http.StatusBadRequest, "reload must be a boolean")
		}
		q.Reload = b
	}
	return q, nil
}

// ListComplaints renders the complaint list.
//
// @Summary      Complaint list
// @Description  Loads on first use or when reload=true. Filter parameters that are present replace the current ones; an invalid value is rejected and the previous filter stays.
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Case-insensitive text search"
// @Param        status    query     string  false  "All, Active, Pending, In Progress or Resolved"
// @Param        priority  query     string  false  "All, Low, Medium, High or Urgent"
// @Param        reload    query     bool    false  "Fetch again"
// @Success      200       {object}  view.ComplaintsState
// @Failure      400       {object}  map[string]string
// @Failure      503       {object}  map[string]string
// @Router       /views/complaints [get]
func (h *ViewHandler) ListComplaints(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	q, err := parseFilterQuery(c)
	if err != nil {
		return err
	}

	ws, release := h.reg.Acquire(s)
	defer release()

	v := ws.Complaints()
	if q.changes() {
		if err := v.SetFilter(q.apply(v.Filter())); err != nil {
			return err
		}
	}
	if !v.Loaded() || q.Reload {
		if err := v.Load(upstreamContext(c, s)); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, v.State())
}

// CreateComplaint submits the new-complaint form.
//
// @Summary      Submit a complaint
// @Description  Answers with the form state: redirect on success, an inline error otherwise.
// @Tags         views
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      view.FormFields  true  "Form fields"
// @Success      201   {object}  view.FormState
// @Failure      422   {object}  view.FormState
// @Failure      502   {object}  view.FormState
// @Failure      503   {object}  view.FormState
// @Router       /views/complaints [post]
func (h *ViewHandler) CreateComplaint(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var fields view.FormFields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	form := view.NewComplaintForm(h.src)
	form.SetFields(fields)

	err = form.Submit(upstreamContext(c, s))
	switch {
	case err == nil:
		metrics.SubmissionsTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, form.State())
	case errors.Is(err, domain.ErrValidation):
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusUnprocessableEntity, form.State())
	}

	metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
	code := http.StatusBadGateway
	if domain.KindOf(err) == domain.KindUnavailable {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, form.State())
}

// GetComplaint renders one complaint.
//
// @Summary      Complaint detail
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Complaint id"
// @Param        reload  query     bool    false  "Fetch again"
// @Success      200     {object}  view.DetailState
// @Failure      404     {object}  view.DetailState
// @Failure      503     {object}  map[string]string
// @Router       /views/complaints/{id} [get]
func (h *ViewHandler) GetComplaint(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	reload, _ := strconv.ParseBool(c.QueryParam("reload"))

	ws, release := h.reg.Acquire(s)
	defer release()

	d := ws.Detail()
	if d.ID() != id || reload {
		if err := d.Load(upstreamContext(c, s), id); err != nil {
			if d.Status() == view.DetailNotFound {
				return c.JSON(http.StatusNotFound, d.State())
			}
			return err
		}
	}
	return c.JSON(http.StatusOK, d.State())
}

// TransitionComplaint changes a complaint's status from the detail screen.
//
// @Summary      Change status
// @Description  The change is kept in the session even when the backend does not persist it; synced=false then.
// @Tags         views
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Complaint id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  transitionResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /views/complaints/{id}/status [post]
func (h *ViewHandler) TransitionComplaint(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if !s.CanManage() {
		return domain.ErrForbidden
	}
	id := c.Param("id")

	ws, release := h.reg.Acquire(s)
	defer release()

	d := ws.Detail()
	ctx := upstreamContext(c, s)
	if d.ID() != id {
		if err := d.Load(ctx, id); err != nil {
			return err
		}
	}

	updated, err := d.Transition(ctx, req.Status)
	if err != nil {
		return err
	}
	if updated.Sync == domain.SyncLocalOnly {
		h.log.Warn().Str("id", id).Str("status", string(req.Status)).Msg("status kept locally only")
	}
	return c.JSON(http.StatusOK, transitionResponse{Complaint: updated, Synced: updated.Sync == domain.SyncSynced})
}
