package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login signs in as the demo user, optionally overriding name, email and role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  false  "Identity to sign in as"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	token, exp, sess, err := h.auth.Login(service.LoginInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, Session: sess})
}

// Session describes the caller: identity, navigation and home route.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Session: s,
		Nav:     s.NavItems(),
		Home:    s.HomePath(),
	})
}
