package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hokkom/session-auth/internal/core/domain"
	"github.com/hokkom/session-auth/internal/core/ports"
)

// SessionCoordinator turns AuthService outcomes into registry transitions.
type SessionCoordinator struct {
	auth     ports.AuthService
	registry ports.SessionRegistry
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

func NewSessionCoordinator(auth ports.AuthService, registry ports.SessionRegistry, audit ports.AuditRecorder, logger zerolog.Logger) *SessionCoordinator {
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &SessionCoordinator{auth: auth, registry: registry, audit: audit, logger: logger}
}

// PerformLogin verifies the credentials and, only on success, issues a new
// session that supersedes any previous one for the user. Auth errors are
// returned unchanged.
func (c *SessionCoordinator) PerformLogin(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess, err := c.registry.Issue(ctx, user.Username)
	if err != nil {
		c.logger.Error().Err(err).Str("username", user.Username).Msg("failed to issue session")
		return nil, err
	}

	c.logger.Info().Str("username", user.Username).Msg("session issued")
	c.audit.Record(domain.AuthEvent{Type: domain.EventLoginSucceeded, Username: user.Username, Timestamp: time.Now().UTC()})
	return sess, nil
}

// PerformLogout invalidates sessionID. It never fails from the caller's view:
// unknown ids are a no-op and registry errors are only logged.
func (c *SessionCoordinator) PerformLogout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	username, err := c.registry.Invalidate(ctx, sessionID)
	if err != nil {
		c.logger.Warn().Err(err).Msg("session invalidation failed")
		return
	}
	if username == "" {
		return
	}

	c.logger.Info().Str("username", username).Msg("session invalidated")
	c.audit.Record(domain.AuthEvent{Type: domain.EventLogout, Username: username, Timestamp: time.Now().UTC()})
}

// Authenticate resolves sessionID to its valid session.
func (c *SessionCoordinator) Authenticate(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return c.registry.Lookup(ctx, sessionID)
}
