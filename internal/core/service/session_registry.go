package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// SessionIDBytes is the entropy of a session identifier (64 hex chars).
const SessionIDBytes = 32

// NewSessionID returns a cryptographically random, hex-encoded identifier.
func NewSessionID() (string, error) {
	b := make([]byte, SessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// MemorySessionRegistry keeps sessions in process memory. A single mutex
// guards both indexes so evict-then-create is one critical section.
type MemorySessionRegistry struct {
	mu            sync.Mutex
	byID          map[string]*domain.Session
	currentByUser map[string]string

	ttl time.Duration
	now func() time.Time
}

// NewMemorySessionRegistry returns an empty registry. A ttl <= 0 disables expiry.
func NewMemorySessionRegistry(ttl time.Duration) *MemorySessionRegistry {
	return &MemorySessionRegistry{
		byID:          make(map[string]*domain.Session),
		currentByUser: make(map[string]string),
		ttl:           ttl,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemorySessionRegistry) Issue(_ context.Context, username string) (*domain.Session, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	id, err := NewSessionID()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.currentByUser[username]; ok {
		r.invalidateLocked(prev)
	}

	now := r.now()
	sess := &domain.Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		Valid:     true,
	}
	if r.ttl > 0 {
		sess.ExpiresAt = now.Add(r.ttl)
	}
	r.byID[id] = sess
	r.currentByUser[username] = id

	clone := *sess
	return &clone, nil
}

func (r *MemorySessionRegistry) Invalidate(_ context.Context, sessionID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalidateLocked(sessionID), nil
}

func (r *MemorySessionRegistry) Lookup(_ context.Context, sessionID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.byID[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !sess.ActiveAt(r.now()) {
		r.invalidateLocked(sessionID)
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

// Len reports the number of sessions currently held.
func (r *MemorySessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// invalidateLocked marks the session invalid, drops it from both indexes and
// returns its owner. Callers must hold r.mu.
func (r *MemorySessionRegistry) invalidateLocked(sessionID string) string {
	sess, ok := r.byID[sessionID]
	if !ok {
		return ""
	}
	sess.Valid = false
	delete(r.byID, sessionID)
	if r.currentByUser[sess.Username] == sessionID {
		delete(r.currentByUser, sess.Username)
	}
	return sess.Username
}
