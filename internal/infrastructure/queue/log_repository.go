package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// LogRepository writes audit events to the log instead of a database. It is
// used when no durable audit store is configured.
type LogRepository struct {
	log zerolog.Logger
}

func NewLogRepository(log zerolog.Logger) *LogRepository {
	return &LogRepository{log: log}
}

func (r *LogRepository) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.log.Info().
		Str("type", string(event.Type)).
		Str("username", event.Username).
		Time("timestamp", event.Timestamp).
		Str("detail", event.Detail).
		Msg("auth event")
	return nil
}
