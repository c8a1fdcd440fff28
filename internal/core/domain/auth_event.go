package domain

import "time"

// AuthEventType classifies an entry in the authentication audit trail.
type AuthEventType string

const (
	EventRegistered     AuthEventType = "registered"
	EventLoginSucceeded AuthEventType = "login_succeeded"
	EventLoginFailed    AuthEventType = "login_failed"
	EventLogout         AuthEventType = "logout"
)

// AuthEvent is an audit record. It never carries a session identifier.
type AuthEvent struct {
	Type      AuthEventType `json:"type" bson:"type"`
	Username  string        `json:"username,omitempty" bson:"username,omitempty"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Detail    string        `json:"detail,omitempty" bson:"detail,omitempty"`
}
