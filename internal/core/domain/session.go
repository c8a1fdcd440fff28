package domain

import "time"

// Session marks one identity as currently authenticated. Username is a weak
// back-reference used for lookup only; User has no knowledge of sessions.
//
// A session moves from valid to invalid exactly once and never back.
type Session struct {
	ID        string    `json:"session_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Valid     bool      `json:"-"`
}

// ActiveAt reports whether the session is valid and not past its expiry at t.
// A zero ExpiresAt means the session never expires.
func (s *Session) ActiveAt(t time.Time) bool {
	if s == nil || !s.Valid {
		return false
	}
	return s.ExpiresAt.IsZero() || t.Before(s.ExpiresAt)
}
