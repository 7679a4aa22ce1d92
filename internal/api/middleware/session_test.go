package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/via/votehub/internal/core/domain"
)

const testSecret = "test-secret"

type stubSessionService struct {
	sess      *domain.Session
	resumeErr error
	resumed   []string
}

func (s *stubSessionService) SignIn(_ context.Context, user *domain.User) (*domain.Session, error) {
	return s.sess, nil
}

func (s *stubSessionService) SignOut(context.Context, string) error { return nil }

func (s *stubSessionService) Resume(_ context.Context, sessionID string) (*domain.Session, error) {
	s.resumed = append(s.resumed, sessionID)
	if s.resumeErr != nil {
		return nil, s.resumeErr
	}
	return s.sess, nil
}

func (s *stubSessionService) TTL() time.Duration { return time.Hour }

func sessionTestContext(t *testing.T, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/submissions", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func runSession(t *testing.T, c echo.Context, svc *stubSessionService) *domain.Session {
	t.Helper()
	var got *domain.Session
	h := Session(testSecret, svc)(func(c echo.Context) error {
		got = SessionFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return got
}

func TestSession_ResolvesCookie(t *testing.T) {
	svc := &stubSessionService{sess: judgeSession()}
	cookie, err := NewSessionCookie(testSecret, "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionCookie returned error: %v", err)
	}
	c, _ := sessionTestContext(t, cookie)

	got := runSession(t, c, svc)
	if got == nil || got.ID != "sess-1" {
		t.Fatalf("expected resolved session sess-1, got %+v", got)
	}
	if len(svc.resumed) != 1 || svc.resumed[0] != "sess-1" {
		t.Fatalf("expected Resume(sess-1), got %v", svc.resumed)
	}
}

func TestSession_NoCookieProceedsUnset(t *testing.T) {
	svc := &stubSessionService{sess: judgeSession()}
	c, rec := sessionTestContext(t, nil)

	if got := runSession(t, c, svc); got != nil {
		t.Fatalf("expected no session, got %+v", got)
	}
	if len(svc.resumed) != 0 {
		t.Fatalf("expected no resume calls, got %v", svc.resumed)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSession_WrongSignatureIgnored(t *testing.T) {
	svc := &stubSessionService{sess: judgeSession()}
	cookie, err := NewSessionCookie("another-secret", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionCookie returned error: %v", err)
	}
	c, _ := sessionTestContext(t, cookie)

	if got := runSession(t, c, svc); got != nil {
		t.Fatalf("expected forged token to be ignored, got %+v", got)
	}
	if len(svc.resumed) != 0 {
		t.Fatalf("expected no resume calls for forged token, got %v", svc.resumed)
	}
}

func TestSession_ExpiredTokenIgnored(t *testing.T) {
	svc := &stubSessionService{sess: judgeSession()}
	cookie, err := NewSessionCookie(testSecret, "sess-1", -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionCookie returned error: %v", err)
	}
	c, _ := sessionTestContext(t, cookie)

	if got := runSession(t, c, svc); got != nil {
		t.Fatalf("expected expired token to be ignored, got %+v", got)
	}
}

func TestSession_NotFoundProceedsUnset(t *testing.T) {
	svc := &stubSessionService{resumeErr: domain.ErrSessionNotFound}
	cookie, err := NewSessionCookie(testSecret, "sess-gone", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionCookie returned error: %v", err)
	}
	c, rec := sessionTestContext(t, cookie)

	if got := runSession(t, c, svc); got != nil {
		t.Fatalf("expected no session, got %+v", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestClearSessionCookie(t *testing.T) {
	cookie := ClearSessionCookie()
	if cookie.Name != SessionCookieName {
		t.Fatalf("Name = %q, want %q", cookie.Name, SessionCookieName)
	}
	if cookie.MaxAge != -1 || cookie.Value != "" {
		t.Fatalf("expected expired empty cookie, got MaxAge=%d Value=%q", cookie.MaxAge, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
}
