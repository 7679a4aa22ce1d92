package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/api/middleware"
	"github.com/via/votehub/internal/core/domain"
)

// ctxSession extracts the reconciled session injected by the Session
// middleware and fast-fails before any service call: handlers behind the
// route guard must always see one, its absence means the guard did not run.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return sess, nil
}
