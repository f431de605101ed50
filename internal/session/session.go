// Package session resolves presented session tokens to user ids.
// Authentication itself lives outside this service; sessions are written by
// the auth system into Redis and only read here.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession signals that the presented token maps to no live session.
var ErrNoSession = errors.New("session not found")

// Store resolves a session token to the owning user id.
type Store interface {
	// UserID returns the user id for the token, or ErrNoSession.
	UserID(ctx context.Context, token string) (string, error)
}

// RedisStore reads session hashes written by the auth system under
// "session:<token>" keys with a "user_id" field. Expiry is handled by the
// key TTL set at login.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore over an already-configured client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) UserID(ctx context.Context, token string) (string, error) {
	userID, err := s.client.HGet(ctx, "session:"+token, "user_id").Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	if userID == "" {
		return "", ErrNoSession
	}
	return userID, nil
}
