package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/acadboost/academic-service/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps opaque session tokens to an authenticated identity. Tokens are
// random and carry no claims; all identity data lives server-side.
type Store interface {
	Create(ctx context.Context, identity models.Identity) (string, error)
	Get(ctx context.Context, token string) (models.Identity, error)
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps sessions in redis so they survive restarts and can be
// shared across instances. A TTL of zero means sessions never expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *RedisStore) Create(ctx context.Context, identity models.Identity) (string, error) {
	data, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	token := uuid.New().String()
	if err := s.client.Set(ctx, sessionKey(token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (models.Identity, error) {
	var identity models.Identity

	data, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return identity, ErrSessionNotFound
		}
		return identity, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &identity); err != nil {
		return identity, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return identity, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// MemoryStore is the fallback when no redis is configured. Sessions are lost
// on restart. A TTL of zero means sessions never expire, matching RedisStore.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	identity  models.Identity
	expiresAt time.Time // zero value = no expiry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
	}
}

func (s *MemoryStore) Create(_ context.Context, identity models.Identity) (string, error) {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	session := memorySession{identity: identity}
	if s.ttl > 0 {
		session.expiresAt = time.Now().Add(s.ttl)
	}
	s.sessions[token] = session
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return models.Identity{}, ErrSessionNotFound
	}
	if session.expired(time.Now()) {
		delete(s.sessions, token)
		return models.Identity{}, ErrSessionNotFound
	}
	return session.identity, nil
}

func (session memorySession) expired(now time.Time) bool {
	return !session.expiresAt.IsZero() && now.After(session.expiresAt)
}

// sweepLocked drops expired sessions; the caller holds the lock.
func (s *MemoryStore) sweepLocked() {
	now := time.Now()
	for token, session := range s.sessions {
		if session.expired(now) {
			delete(s.sessions, token)
		}
	}
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
