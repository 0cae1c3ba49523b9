// Package session implements server-side login sessions backed by Redis.
// A session is an opaque token mapping to the authenticated username; it is
// created on login, destroyed on logout, and expires with its TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the session token.
const CookieName = "chronicle_session"

const keyPrefix = "session:%s"

// Store issues and resolves session tokens. With a nil Redis client the
// store degrades to stateless operation: tokens are issued but never
// resolvable.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a session store with the given TTL.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(token string) string {
	return fmt.Sprintf(keyPrefix, token)
}

// Create issues a fresh opaque token bound to username.
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if s.rdb == nil {
		return token, nil
	}
	if err := s.rdb.Set(ctx, key(token), username, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to its username. Returns ("", nil) for unknown or
// expired tokens.
func (s *Store) Get(ctx context.Context, token string) (string, error) {
	if s.rdb == nil || token == "" {
		return "", nil
	}
	username, err := s.rdb.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

// Destroy invalidates a token. Destroying an unknown token is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if s.rdb == nil || token == "" {
		return nil
	}
	return s.rdb.Del(ctx, key(token)).Err()
}
