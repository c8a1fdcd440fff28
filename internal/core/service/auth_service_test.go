package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hokkom/session-auth/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubDirectory struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	inserts   int
	existsErr error
	findErr   error
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (d *stubDirectory) ExistsByUsername(_ context.Context, username string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.existsErr != nil {
		return false, d.existsErr
	}
	_, ok := d.users[username]
	return ok, nil
}

func (d *stubDirectory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.findErr != nil {
		return nil, d.findErr
	}
	u, ok := d.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (d *stubDirectory) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.users[user.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	d.inserts++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u-%d", d.inserts)
	d.users[copy.Username] = cloneUser(copy)
	return copy, nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *recordingAudit) Record(e domain.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) types() []domain.AuthEventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventType, len(a.events))
	for i, e := range a.events {
		out[i] = e.Type
	}
	return out
}

func (a *recordingAudit) last() domain.AuthEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.events) == 0 {
		return domain.AuthEvent{}
	}
	return a.events[len(a.events)-1]
}

// countingHasher wraps a real hasher and counts Verify calls.
type countingHasher struct {
	*BcryptHasher
	mu       sync.Mutex
	verifies int
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.BcryptHasher.Verify(plaintext, digest)
}

// brokenHasher fails every Hash call and records the digests Verify sees.
type brokenHasher struct {
	mu      sync.Mutex
	hashes  int
	digests []string
}

func (h *brokenHasher) Hash(string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hashes++
	return "", errors.New("entropy source unavailable")
}

func (h *brokenHasher) Verify(plaintext, digest string) bool {
	h.mu.Lock()
	h.digests = append(h.digests, digest)
	h.mu.Unlock()
	return NewBcryptHasher(bcrypt.MinCost).Verify(plaintext, digest)
}

func newTestAuthService(dir *stubDirectory) *AuthService {
	return NewAuthService(dir, NewBcryptHasher(bcrypt.MinCost), nil, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	dir := newStubDirectory()
	svc := newTestAuthService(dir)

	user, err := svc.Register(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected username: %s", user.Username)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %s, got %s", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected the persisted identity to be returned")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubDirectory())

	cases := []struct{ username, password string }{
		{"", "pass"},
		{"bob", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.username, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Register(%q, %q): expected ErrInvalidInput, got %v", tc.username, tc.password, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	dir := newStubDirectory()
	svc := newTestAuthService(dir)

	if _, err := svc.Register(context.Background(), "bob", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	for _, p2 := range []string{"pass", "other", "x"} {
		if _, err := svc.Register(context.Background(), "bob", p2); !errors.Is(err, domain.ErrDuplicateUsername) {
			t.Fatalf("expected ErrDuplicateUsername for password %q, got %v", p2, err)
		}
	}
	if dir.inserts != 1 {
		t.Fatalf("expected exactly one write, got %d", dir.inserts)
	}
}

func TestAuthService_Register_UsernameIsCaseSensitive(t *testing.T) {
	svc := newTestAuthService(newStubDirectory())

	if _, err := svc.Register(context.Background(), "Carol", "pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "carol", "pass"); err != nil {
		t.Fatalf("expected distinct username to register, got %v", err)
	}
}

func TestAuthService_Register_DirectoryUnavailable(t *testing.T) {
	dir := newStubDirectory()
	dir.existsErr = fmt.Errorf("%w: connection refused", domain.ErrDirectoryUnavailable)
	svc := newTestAuthService(dir)

	_, err := svc.Register(context.Background(), "dave", "pass")
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
	if dir.inserts != 0 {
		t.Fatalf("expected no write on directory failure")
	}
}

func TestAuthService_Register_ConcurrentSameUsername(t *testing.T) {
	dir := newStubDirectory()
	svc := newTestAuthService(dir)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "erin", fmt.Sprintf("pass-%d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrDuplicateUsername):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", successes)
	}
}

func TestAuthService_Register_RecordsAudit(t *testing.T) {
	audit := &recordingAudit{}
	svc := NewAuthService(newStubDirectory(), NewBcryptHasher(bcrypt.MinCost), audit, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "frank", "pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	got := audit.types()
	if len(got) != 1 || got[0] != domain.EventRegistered {
		t.Fatalf("unexpected audit events: %v", got)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubDirectory())

	if _, err := svc.Register(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubDirectory())

	_, _ = svc.Register(context.Background(), "dave", "goodpass")
	for _, p := range []string{"badpass", "goodpass ", "GOODPASS", "g"} {
		if _, err := svc.Login(context.Background(), "dave", p); !errors.Is(err, domain.ErrInvalidCredential) {
			t.Fatalf("password %q: expected ErrInvalidCredential, got %v", p, err)
		}
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newTestAuthService(newStubDirectory())

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserStillVerifies(t *testing.T) {
	hasher := &countingHasher{BcryptHasher: NewBcryptHasher(bcrypt.MinCost)}
	svc := NewAuthService(newStubDirectory(), hasher, nil, zerolog.Nop())

	_, _ = svc.Login(context.Background(), "ghost", "pass")
	if hasher.verifies != 1 {
		t.Fatalf("expected one verify on unknown user, got %d", hasher.verifies)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc := newTestAuthService(newStubDirectory())

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_DirectoryErrorPropagates(t *testing.T) {
	dir := newStubDirectory()
	dir.findErr = fmt.Errorf("%w: timeout", domain.ErrDirectoryUnavailable)
	svc := newTestAuthService(dir)

	_, err := svc.Login(context.Background(), "alice", "pass")
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("directory outage must not look like an unknown user")
	}
}

func TestAuthService_Login_RecordsFailures(t *testing.T) {
	audit := &recordingAudit{}
	svc := NewAuthService(newStubDirectory(), NewBcryptHasher(bcrypt.MinCost), audit, zerolog.Nop())

	_, _ = svc.Register(context.Background(), "gina", "right")
	_, _ = svc.Login(context.Background(), "gina", "wrong")
	_, _ = svc.Login(context.Background(), "nobody", "wrong")

	got := audit.types()
	want := []domain.AuthEventType{domain.EventRegistered, domain.EventLoginFailed, domain.EventLoginFailed}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAuthService_Login_UnknownUserFallsBackToWellFormedDigest(t *testing.T) {
	hasher := &brokenHasher{}
	svc := NewAuthService(newStubDirectory(), hasher, nil, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrUnknownUser) {
			t.Fatalf("expected ErrUnknownUser, got %v", err)
		}
	}

	if len(hasher.digests) != 2 {
		t.Fatalf("expected a verify per attempt, got %d", len(hasher.digests))
	}
	for _, d := range hasher.digests {
		if d != fallbackDummyHash {
			t.Fatalf("expected the fallback digest, got %q", d)
		}
	}
	if hasher.hashes != 2 {
		t.Fatalf("a failed dummy hash should be retried, got %d attempts", hasher.hashes)
	}
}

func TestFallbackDummyHash_IsWellFormed(t *testing.T) {
	cost, err := bcrypt.Cost([]byte(fallbackDummyHash))
	if err != nil {
		t.Fatalf("fallback digest rejected by bcrypt: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}
	if NewBcryptHasher(bcrypt.MinCost).Verify(dummyPassword, fallbackDummyHash) {
		t.Fatalf("fallback digest must not match the dummy password")
	}
}
