package domain

import "time"

// RoleUser is the role assigned to every self-registered identity.
const RoleUser = "USER"

// User models a registered identity. Username is unique and never changes
// after registration; the core never mutates a User once it is stored.
type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credential is the transient username/password pair presented at
// registration or login. It is never persisted.
type Credential struct {
	Username string
	Password string
}

// Validate reports ErrInvalidInput when either field is empty.
func (c Credential) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrInvalidInput
	}
	return nil
}
