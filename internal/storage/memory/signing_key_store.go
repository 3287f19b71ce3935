package memory

import (
	"context"
	"sync"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// signingKeyID is the composite identity of a custodied key.
type signingKeyID struct {
	wallet  string
	subject string
	role    domain.KeyRole
}

// SigningKeyStore is an in-memory implementation of storage.SigningKeyStore.
type SigningKeyStore struct {
	mu   sync.RWMutex
	keys map[signingKeyID]*domain.SigningKey
}

// NewSigningKeyStore creates a new in-memory signing key store.
func NewSigningKeyStore() *SigningKeyStore {
	return &SigningKeyStore{
		keys: make(map[signingKeyID]*domain.SigningKey),
	}
}

// Put stores a signing key, replacing any existing record for the tuple.
func (s *SigningKeyStore) Put(_ context.Context, key *domain.SigningKey) error {
	if key == nil || key.Wallet == "" || key.Subject == "" || key.SecretKey == "" || !key.Role.Valid() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keyCopy := *key
	s.keys[signingKeyID{key.Wallet, key.Subject, key.Role}] = &keyCopy
	return nil
}

// Get retrieves a signing key by composite key. Returns ErrNotFound if not exists.
func (s *SigningKeyStore) Get(_ context.Context, wallet, subject string, role domain.KeyRole) (*domain.SigningKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, exists := s.keys[signingKeyID{wallet, subject, role}]
	if !exists {
		return nil, storage.ErrNotFound
	}

	keyCopy := *key
	return &keyCopy, nil
}

var _ storage.SigningKeyStore = (*SigningKeyStore)(nil)
