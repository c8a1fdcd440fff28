package ports

import (
	"context"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// UserDirectory is the durable store of identities.
type UserDirectory interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// FindByUsername returns domain.ErrUserNotFound on a miss.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Insert stores user only if no identity with the same username exists,
	// as one atomic step. It returns domain.ErrDuplicateUsername otherwise.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
}
