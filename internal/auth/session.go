package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps the server-side session registry in Redis. A login
// creates an entry, logout deletes it, and tokens whose session id is gone
// are rejected even if the signature is still valid.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds the store.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create registers a new session for the account and returns its id.
func (s *SessionStore) Create(ctx context.Context, accountID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, accountID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Validate reports whether the session is still registered and returns the
// account id it was issued for.
func (s *SessionStore) Validate(ctx context.Context, sessionID string) (string, error) {
	accountID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return accountID, nil
}

// Delete revokes the session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// ErrSessionNotFound indicates a revoked or expired session.
var ErrSessionNotFound = errors.New("session not found")
