package ports

import (
	"context"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the caller on I/O.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuthEventRepository persists audit events.
type AuthEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
