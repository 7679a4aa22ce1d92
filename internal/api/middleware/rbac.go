package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/core/domain"
)

// Navigation targets used by guard decisions.
const (
	LoginPage                = "/login"
	DefaultAuthenticatedPage = "/submissions"
)

// Decision is the outcome of a route-guard check. A disallowed request
// carries the page the caller should navigate to instead.
type Decision struct {
	Allowed bool
	Target  string
}

// Authorize gates access to a role-restricted view. It performs no navigation
// itself: no session sends the caller to the login page, a session with the
// wrong role to the default authenticated landing page.
func Authorize(sess *domain.Session, required ...domain.Role) Decision {
	if sess == nil {
		return Decision{Target: LoginPage}
	}
	role := domain.NormalizeRole(sess.Role)
	for _, r := range required {
		if role == r {
			return Decision{Allowed: true}
		}
	}
	return Decision{Target: DefaultAuthenticatedPage}
}

// RBAC enforces role-based access on a route, redirecting per the Authorize
// decision. Must run after the Session middleware.
func RBAC(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := Authorize(SessionFromContext(c), required...)
			if !decision.Allowed {
				return c.Redirect(http.StatusFound, decision.Target)
			}
			return next(c)
		}
	}
}
