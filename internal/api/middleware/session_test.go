package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hokkom/session-auth/internal/core/domain"
)

type stubCoordinator struct {
	sessions map[string]*domain.Session
	seen     []string
}

func (s *stubCoordinator) PerformLogin(context.Context, string, string) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCoordinator) PerformLogout(context.Context, string) {}

func (s *stubCoordinator) Authenticate(_ context.Context, id string) (*domain.Session, error) {
	s.seen = append(s.seen, id)
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func newStubCoordinator() *stubCoordinator {
	return &stubCoordinator{sessions: map[string]*domain.Session{
		"sid-1": {ID: "sid-1", Username: "alice", Valid: true},
	}}
}

func TestRequireSession_Cookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "SESSION", Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := RequireSession(newStubCoordinator(), "SESSION")(func(c echo.Context) error {
		called = true
		if c.Get(ContextKeyUsername) != "alice" {
			t.Fatalf("username not set")
		}
		sess, err := SessionFrom(c)
		if err != nil || sess.ID != "sid-1" {
			t.Fatalf("session not set: %+v, %v", sess, err)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireSession_HeaderFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(HeaderSessionID, "sid-1")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequireSession(newStubCoordinator(), "SESSION")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestRequireSession_CookieWinsOverHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "SESSION", Value: "sid-1"})
	req.Header.Set(HeaderSessionID, "other")
	c := e.NewContext(req, httptest.NewRecorder())

	coord := newStubCoordinator()
	_ = RequireSession(coord, "SESSION")(func(c echo.Context) error { return nil })(c)

	if len(coord.seen) != 1 || coord.seen[0] != "sid-1" {
		t.Fatalf("expected cookie id to be used, saw %v", coord.seen)
	}
}

func TestRequireSession_Rejects(t *testing.T) {
	cases := map[string]func(r *http.Request){
		"missing": func(r *http.Request) {},
		"unknown": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "SESSION", Value: "nope"}) },
		"blank":   func(r *http.Request) { r.Header.Set(HeaderSessionID, "   ") },
	}
	for name, prepare := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		prepare(req)
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		err := RequireSession(newStubCoordinator(), "SESSION")(func(c echo.Context) error {
			called = true
			return nil
		})(c)

		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("%s: expected ErrSessionNotFound, got %v", name, err)
		}
		if called {
			t.Fatalf("%s: next handler must not run", name)
		}
	}
}

func TestSessionFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, err := SessionFrom(c); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
