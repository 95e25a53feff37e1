package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/core/view"
)

// GetDashboard renders the student landing page.
//
// @Summary      Student dashboard
// @Description  Staff and admins get a redirect to the staff dashboard instead.
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view.DashboardState
// @Router       /views/dashboard [get]
func (h *ViewHandler) GetDashboard(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	d := view.NewStudentDashboard(h.src, s)
	if err := d.Load(upstreamContext(c, s)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d.State())
}

// GetNotifications lists the session's notifications.
//
// @Summary      Notifications
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view.NotificationsState
// @Router       /views/notifications [get]
func (h *ViewHandler) GetNotifications(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	ws, release := h.reg.Acquire(s)
	defer release()
	return c.JSON(http.StatusOK, ws.Notifications().State())
}

// MarkNotificationRead flags a notification as read.
//
// @Summary      Open notification
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  readResponse
// @Failure      404  {object}  map[string]string
// @Router       /views/notifications/{id}/read [post]
func (h *ViewHandler) MarkNotificationRead(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	ws, release := h.reg.Acquire(s)
	defer release()

	link, err := ws.Notifications().MarkRead(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, readResponse{Link: link})
}
