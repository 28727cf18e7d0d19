package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const credentialKeyPrefix = "credentials:v1:"

// ErrCredentialNotFound reports that no secret exists for the owner, or
// that the stored owner identity does not match. The caller is expected to
// start a re-provisioning flow; the lookup is never retried internally.
var ErrCredentialNotFound = errors.New("auth: credential not found")

// CredentialStore is the secure keychain boundary. Secrets are opaque to
// the store; sealing and unsealing happen in the service.
type CredentialStore interface {
	GetSecret(ctx context.Context, ownerID string) (string, error)
	SetSecret(ctx context.Context, ownerID, secret string) error
}

// RedisCredentialStore keeps sealed secrets in Redis keyed by owner.
type RedisCredentialStore struct {
	client *redis.Client
}

// NewRedisCredentialStore builds a store backed by the given client.
func NewRedisCredentialStore(client *redis.Client) *RedisCredentialStore {
	return &RedisCredentialStore{client: client}
}

// GetSecret fetches the sealed secret for ownerID.
func (s *RedisCredentialStore) GetSecret(ctx context.Context, ownerID string) (string, error) {
	secret, err := s.client.Get(ctx, credentialKeyPrefix+ownerID).Result()
	if err == redis.Nil {
		return "", ErrCredentialNotFound
	}
	if err != nil {
		return "", fmt.Errorf("credential lookup: %w", err)
	}
	return secret, nil
}

// SetSecret persists the sealed secret for ownerID. Secrets never expire;
// replacing the PIN overwrites the previous entry.
func (s *RedisCredentialStore) SetSecret(ctx context.Context, ownerID, secret string) error {
	if err := s.client.Set(ctx, credentialKeyPrefix+ownerID, secret, 0).Err(); err != nil {
		return fmt.Errorf("credential persist: %w", err)
	}
	return nil
}

type memoryCredentialStore struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewMemoryCredentialStore constructs an in-memory store for tests and for
// running without Redis.
func NewMemoryCredentialStore() CredentialStore {
	return &memoryCredentialStore{secrets: make(map[string]string)}
}

func (s *memoryCredentialStore) GetSecret(_ context.Context, ownerID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	secret, ok := s.secrets[ownerID]
	if !ok {
		return "", ErrCredentialNotFound
	}
	return secret, nil
}

func (s *memoryCredentialStore) SetSecret(_ context.Context, ownerID, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[ownerID] = secret
	return nil
}
