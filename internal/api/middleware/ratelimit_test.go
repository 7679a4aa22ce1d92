package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func loginAttempt(t *testing.T, rl *LoginRateLimiter, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestLoginRateLimiter_BlocksBeyondBurst(t *testing.T) {
	rl := NewLoginRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if err := loginAttempt(t, rl, "10.0.0.1"); err != nil {
			t.Fatalf("attempt %d within burst rejected: %v", i+1, err)
		}
	}

	err := loginAttempt(t, rl, "10.0.0.1")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", err)
	}
}

func TestLoginRateLimiter_TracksIPsIndependently(t *testing.T) {
	rl := NewLoginRateLimiter(1, 1)

	if err := loginAttempt(t, rl, "10.0.0.1"); err != nil {
		t.Fatalf("first IP rejected: %v", err)
	}
	if err := loginAttempt(t, rl, "10.0.0.1"); err == nil {
		t.Fatal("expected first IP to be throttled")
	}
	if err := loginAttempt(t, rl, "10.0.0.2"); err != nil {
		t.Fatalf("second IP should be unaffected, got %v", err)
	}
}
