// Package memory provides a process-local UserDirectory for development and
// tests. Data does not survive a restart.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/hokkom/session-auth/internal/core/domain"
)

type UserDirectory struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	nextID int
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]domain.User)}
}

func (d *UserDirectory) ExistsByUsername(_ context.Context, username string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[username]
	return ok, nil
}

func (d *UserDirectory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// Insert checks and writes under the same lock.
func (d *UserDirectory) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.Username]; ok {
		return nil, domain.ErrDuplicateUsername
	}
	d.nextID++
	stored := *user
	stored.ID = strconv.Itoa(d.nextID)
	d.users[stored.Username] = stored
	return &stored, nil
}
