package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hokkom/session-auth/internal/core/domain"
	"github.com/hokkom/session-auth/internal/core/service"
)

// Key layout:
//
//	sess:id:<session_id>  hash {username, created_at, expires_at}
//	sess:user:<username>  string <session_id> of the current session
const (
	sessionKeyPrefix = "sess:id:"
	userKeyPrefix    = "sess:user:"
)

// issueScript evicts the user's current session and stores the new one in a
// single server-side step.
var issueScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
if prev then
  redis.call('DEL', ARGV[6] .. prev)
end
redis.call('HSET', KEYS[2], 'username', ARGV[2], 'created_at', ARGV[3], 'expires_at', ARGV[4])
local ttl = tonumber(ARGV[5])
if ttl > 0 then
  redis.call('PEXPIRE', KEYS[2], ttl)
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
else
  redis.call('SET', KEYS[1], ARGV[1])
end
if prev then
  return 1
end
return 0
`)

// invalidateScript removes a session, clears the owner's pointer only if it
// still refers to that session, and returns the owner ('' when absent).
var invalidateScript = redis.NewScript(`
local owner = redis.call('HGET', KEYS[1], 'username')
if not owner then
  return ''
end
redis.call('DEL', KEYS[1])
local ukey = ARGV[2] .. owner
if redis.call('GET', ukey) == ARGV[1] then
  redis.call('DEL', ukey)
end
return owner
`)

// SessionRegistry implements ports.SessionRegistry backed by Redis so that
// sessions are shared across service replicas.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionRegistry wraps client. A ttl <= 0 stores sessions without expiry.
func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		client: client,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *SessionRegistry) Issue(ctx context.Context, username string) (*domain.Session, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	id, err := service.NewSessionID()
	if err != nil {
		return nil, err
	}

	now := r.now()
	sess := &domain.Session{ID: id, Username: username, CreatedAt: now, Valid: true}
	var expires int64
	if r.ttl > 0 {
		sess.ExpiresAt = now.Add(r.ttl)
		expires = sess.ExpiresAt.UnixNano()
	}

	err = issueScript.Run(ctx, r.client,
		[]string{userKey(username), sessionKey(id)},
		id, username, now.UnixNano(), expires, r.ttl.Milliseconds(), sessionKeyPrefix,
	).Err()
	if err != nil {
		return nil, fmt.Errorf("redis issue session: %w", err)
	}
	return sess, nil
}

func (r *SessionRegistry) Invalidate(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	owner, err := invalidateScript.Run(ctx, r.client, []string{sessionKey(sessionID)}, sessionID, userKeyPrefix).Text()
	if err != nil {
		return "", fmt.Errorf("redis invalidate session: %w", err)
	}
	return owner, nil
}

func (r *SessionRegistry) Lookup(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	fields, err := r.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis lookup session: %w", err)
	}

	sess, err := parseSession(sessionID, fields)
	if err != nil {
		return nil, err
	}
	if !sess.ActiveAt(r.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// parseSession decodes the session hash. An empty or incomplete hash is
// reported as not found.
func parseSession(id string, fields map[string]string) (*domain.Session, error) {
	username := fields["username"]
	if username == "" {
		return nil, domain.ErrSessionNotFound
	}
	created, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("redis session %s: bad created_at: %w", id, err)
	}
	sess := &domain.Session{
		ID:        id,
		Username:  username,
		CreatedAt: time.Unix(0, created).UTC(),
		Valid:     true,
	}
	if raw := fields["expires_at"]; raw != "" && raw != "0" {
		expires, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis session %s: bad expires_at: %w", id, err)
		}
		sess.ExpiresAt = time.Unix(0, expires).UTC()
	}
	return sess, nil
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func userKey(username string) string { return userKeyPrefix + username }
