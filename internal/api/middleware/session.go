package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
)

// SessionCookieName is the slot the browser carries the session token in.
const SessionCookieName = "votehub_session"

// sessionContextKey is where the resolved session lives in the echo context.
const sessionContextKey = "session"

// NewSessionCookie mints the signed cookie for a session ID. The token is an
// HS256 JWT carrying only the session ID; the session record itself lives
// server-side.
func NewSessionCookie(secret, sessionID string, ttl time.Duration) (*http.Cookie, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearSessionCookie returns an expired cookie that removes the session slot.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionIDFromCookie extracts and verifies the session ID carried by the
// request, or returns "" when the request carries no usable token.
func sessionIDFromCookie(c echo.Context, secret string) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	sid, _ := claims["sid"].(string)
	return sid
}

// Session resolves the request's session cookie into a reconciled session and
// injects it into the context. A request with no usable session proceeds with
// none set; the route guard decides what that means per route.
func Session(secret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := sessionIDFromCookie(c, secret)
			if sid == "" {
				return next(c)
			}

			sess, err := sessions.Resume(c.Request().Context(), sid)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					c.Logger().Warnf("session resume failed: %v", err)
				}
				return next(c)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFromContext returns the reconciled session for this request, or nil.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// SetSession seeds the context with a session. Intended for tests and for the
// login handler, which holds the fresh session before any middleware ran.
func SetSession(c echo.Context, sess *domain.Session) {
	c.Set(sessionContextKey, sess)
}
