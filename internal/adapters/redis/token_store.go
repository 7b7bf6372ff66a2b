package redis

// Package redis provides a Redis-backed credential store for shared
// terminals (badge clock-in kiosks), where several workstations must see
// the same legacy credential. Single-workstation deployments use the
// tokenfile adapter instead.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the single legacy bearer credential under one key.
type TokenStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore. terminal names the kiosk so two
// stations never share a credential slot. ttl of zero keeps the token
// until logout.
func NewTokenStore(client redis.UniversalClient, terminal string, ttl time.Duration) (*TokenStore, error) {
	if client == nil {
		return nil, errors.New("redis: client is required")
	}
	if terminal == "" {
		return nil, errors.New("redis: terminal name is required")
	}
	return &TokenStore{
		client: client,
		key:    "ponto:token:" + terminal,
		ttl:    ttl,
	}, nil
}

// Load returns the stored credential, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return val, nil
}

// Save stores the credential, refreshing the TTL when one is configured.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("redis: refusing to save empty token")
	}
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

// Clear removes the credential. Deleting a missing key succeeds, keeping
// logout idempotent.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del token: %w", err)
	}
	return nil
}
