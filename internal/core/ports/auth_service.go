package ports

import (
	"context"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// PasswordHasher is a salted one-way transform with verification.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never fails on a malformed digest; it reports false instead.
	Verify(plaintext, digest string) bool
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login checks credentials only. It never touches session state.
	Login(ctx context.Context, username, password string) (*domain.User, error)
}
