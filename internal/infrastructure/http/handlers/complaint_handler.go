package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/api/metrics"
	"github.com/brocode/complaint-portal/internal/api/middleware"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// ComplaintHandler serves the /complaints resource in the {data: ...}
// envelope the portal consumes.
type ComplaintHandler struct {
	service ports.ComplaintService
}

func NewComplaintHandler(service ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}

type createComplaintRequest struct {
	Title       string          `json:"title"`
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
}

type updateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status"`
	Note   string                 `json:"note"`
}

// caller maps the request session onto the service's view of it. Requests
// without a token carry the zero session and are not scoped.
func caller(c echo.Context) (ports.Caller, domain.Session) {
	s, _ := middleware.SessionFrom(c)
	return ports.Caller{UserID: s.UserID, Role: s.Role}, s
}

// List handles GET /api/v1/complaints.
func (h *ComplaintHandler) List(c echo.Context) error {
	who, _ := caller(c)
	out, err := h.service.List(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[[]domain.Complaint]{Data: out})
}

// Get handles GET /api/v1/complaints/:id.
func (h *ComplaintHandler) Get(c echo.Context) error {
	who, _ := caller(c)
	out, err := h.service.Get(c.Request().Context(), who, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[*domain.Complaint]{Data: out})
}

// Create handles POST /api/v1/complaints. A repeated Idempotency-Key answers
// 200 with the complaint created the first time.
func (h *ComplaintHandler) Create(c echo.Context) error {
	var req createComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	_, s := caller(c)

	res, err := h.service.Create(c.Request().Context(), ports.CreateComplaintInput{
		Title:          req.Title,
		Category:       req.Category,
		Description:    req.Description,
		Priority:       req.Priority,
		Submitter:      domain.Submitter{ID: s.UserID, Name: s.Name, Email: s.Email},
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		metrics.IdempotentReplaysTotal.Inc()
		return c.JSON(http.StatusOK, dataResponse[*domain.Complaint]{Data: res.Complaint})
	}
	metrics.ComplaintsCreatedTotal.WithLabelValues(string(res.Complaint.Category)).Inc()
	return c.JSON(http.StatusCreated, dataResponse[*domain.Complaint]{Data: res.Complaint})
}

// UpdateStatus handles PATCH /api/v1/complaints/:id.
func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	who, s := caller(c)

	out, err := h.service.UpdateStatus(c.Request().Context(), who, ports.UpdateStatusInput{
		ID:     c.Param("id"),
		Status: req.Status,
		Note:   req.Note,
		Author: s.NoteAuthor(),
	})
	if err != nil {
		return err
	}
	metrics.StatusChangesTotal.WithLabelValues(string(out.Status)).Inc()
	return c.JSON(http.StatusOK, dataResponse[*domain.Complaint]{Data: out})
}
