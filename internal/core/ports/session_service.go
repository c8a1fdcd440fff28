package ports

import (
	"context"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// SessionRegistry tracks the single valid session of each user.
type SessionRegistry interface {
	// Issue creates a new valid session for username and invalidates any
	// session it previously held, atomically.
	Issue(ctx context.Context, username string) (*domain.Session, error)
	// Invalidate ends the session and returns the username that held it.
	// Unknown or already invalid ids are a no-op reporting "".
	Invalidate(ctx context.Context, sessionID string) (string, error)
	// Lookup returns domain.ErrSessionNotFound unless the session is valid.
	Lookup(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionCoordinator ties credential checks to session transitions.
type SessionCoordinator interface {
	PerformLogin(ctx context.Context, username, password string) (*domain.Session, error)
	PerformLogout(ctx context.Context, sessionID string)
	Authenticate(ctx context.Context, sessionID string) (*domain.Session, error)
}
