package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hokkom/session-auth/internal/api/metrics"
	"github.com/hokkom/session-auth/internal/core/domain"
	"github.com/hokkom/session-auth/internal/core/ports"
)

// HeaderSessionID carries the session id for clients that do not keep cookies.
const HeaderSessionID = "X-Session-ID"

// Context keys set by RequireSession.
const (
	ContextKeySession  = "session"
	ContextKeyUsername = "username"
)

// SessionID returns the id presented by the request: the session cookie when
// set, otherwise the X-Session-ID header. Empty when neither is present.
func SessionID(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	return strings.TrimSpace(c.Request().Header.Get(HeaderSessionID))
}

// RequireSession rejects requests without a valid session and injects the
// session and its username into the context.
func RequireSession(sessions ports.SessionCoordinator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.Authenticate(c.Request().Context(), SessionID(c, cookieName))
			if err != nil {
				metrics.SessionRejectionsTotal.Inc()
				return err
			}

			c.Set(ContextKeySession, sess)
			c.Set(ContextKeyUsername, sess.Username)

			return next(c)
		}
	}
}

// SessionFrom returns the session injected by RequireSession.
func SessionFrom(c echo.Context) (*domain.Session, error) {
	sess, ok := c.Get(ContextKeySession).(*domain.Session)
	if !ok || sess == nil {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}
