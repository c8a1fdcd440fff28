package service

import "github.com/hokkom/session-auth/internal/core/domain"

// NopAuditRecorder discards every event.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(domain.AuthEvent) {}
