package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/api/metrics"
	"github.com/via/votehub/internal/api/middleware"
	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

type AuthHandler struct {
	auth      ports.AuthService
	sessions  ports.SessionService
	jwtSecret string
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionService, jwtSecret string) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, jwtSecret: jwtSecret}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView is the public shape of an account, the only one the API emits.
type userView struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

type sessionResponse struct {
	User userView `json:"user"`
}

// Login authenticates a user and issues the session cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrInvalidPassword):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	sess, err := h.sessions.SignIn(c.Request().Context(), user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	cookie, err := middleware.NewSessionCookie(h.jwtSecret, sess.ID, h.sessions.TTL())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	c.SetCookie(cookie)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{User: sessionUserView(sess)})
}

// Logout clears the session server-side and expires the cookie. Idempotent:
// logging out without a session still succeeds.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.SessionFromContext(c); sess != nil {
		if err := h.sessions.SignOut(c.Request().Context(), sess.ID); err != nil {
			return err
		}
	}
	c.SetCookie(middleware.ClearSessionCookie())
	return c.NoContent(http.StatusNoContent)
}

// Session returns the reconciled session for the calling tab.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sessionUserView(sess)})
}

func sessionUserView(sess *domain.Session) userView {
	return userView{
		ID:    sess.UserID,
		Email: sess.Email,
		Name:  sess.Name,
		Role:  sess.Role,
	}
}
