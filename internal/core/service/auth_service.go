package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hokkom/session-auth/internal/core/domain"
	"github.com/hokkom/session-auth/internal/core/ports"
)

// dummyPassword is hashed once and verified against whenever the username is
// unknown, so both login failure paths pay the same bcrypt cost.
const dummyPassword = "session-auth-timing-equaliser"

// fallbackDummyHash is a well-formed cost-10 bcrypt digest, used when the
// dummy password cannot be hashed so Verify still runs the full key derivation.
const fallbackDummyHash = "$2a$10$dXJ3SW6G7P50lGmMkkmwe.20cQQubK3.HZWzG3YB1tlRy.fqvM/BG"

// AuthService implements registration and credential verification.
type AuthService struct {
	directory ports.UserDirectory
	hasher    ports.PasswordHasher
	audit     ports.AuditRecorder
	logger    zerolog.Logger
	now       func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
}

func NewAuthService(directory ports.UserDirectory, hasher ports.PasswordHasher, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &AuthService{
		directory: directory,
		hasher:    hasher,
		audit:     audit,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register stores a new identity with role USER. Registration is not
// idempotent: retrying a successful call reports ErrDuplicateUsername.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	cred := domain.Credential{Username: username, Password: password}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.directory.ExistsByUsername(ctx, cred.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(cred.Password)
	if err != nil {
		return nil, err
	}

	// Insert is the atomic step; the Exists check above only avoids hashing
	// for the common collision.
	created, err := s.directory.Insert(ctx, &domain.User{
		Username:     cred.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	s.audit.Record(domain.AuthEvent{Type: domain.EventRegistered, Username: created.Username, Timestamp: s.now()})
	return created, nil
}

// Login returns the identity matching the credential pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	cred := domain.Credential{Username: username, Password: password}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	user, err := s.directory.FindByUsername(ctx, cred.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(cred.Password, s.dummyDigest())
			s.recordFailure(cred.Username, "unknown user")
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	if !s.hasher.Verify(cred.Password, user.PasswordHash) {
		s.recordFailure(cred.Username, "password mismatch")
		return nil, domain.ErrInvalidCredential
	}

	return user, nil
}

func (s *AuthService) recordFailure(username, detail string) {
	s.logger.Debug().Str("username", username).Str("reason", detail).Msg("login rejected")
	s.audit.Record(domain.AuthEvent{Type: domain.EventLoginFailed, Username: username, Timestamp: s.now(), Detail: detail})
}

// dummyDigest returns the digest verified for unknown users. A failed
// preparation falls back to fallbackDummyHash and is retried on the next call.
func (s *AuthService) dummyDigest() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash != "" {
		return s.dummyHash
	}
	hash, err := s.hasher.Hash(dummyPassword)
	if err != nil || hash == "" {
		s.logger.Warn().Err(err).Msg("failed to prepare dummy password hash, using fallback digest")
		return fallbackDummyHash
	}
	s.dummyHash = hash
	return hash
}
