package memory

import (
	"context"
	"sort"
	"sync"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// PoolConfigStore is an in-memory implementation of storage.PoolConfigStore.
type PoolConfigStore struct {
	mu      sync.RWMutex
	configs map[string]*domain.PoolConfig // keyed by config public key
}

// NewPoolConfigStore creates a new in-memory pool config store.
func NewPoolConfigStore() *PoolConfigStore {
	return &PoolConfigStore{
		configs: make(map[string]*domain.PoolConfig),
	}
}

// Insert adds a new config record. Returns ErrDuplicateKey if the key exists.
func (s *PoolConfigStore) Insert(_ context.Context, c *domain.PoolConfig) error {
	if c == nil || c.Key == "" || c.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.configs[c.Key]; exists {
		return storage.ErrDuplicateKey
	}

	cfgCopy := *c
	s.configs[c.Key] = &cfgCopy
	return nil
}

// GetByKey retrieves a config by public key. Returns ErrNotFound if not exists.
func (s *PoolConfigStore) GetByKey(_ context.Context, key string) (*domain.PoolConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.configs[key]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cfgCopy := *c
	return &cfgCopy, nil
}

// ListRecent retrieves up to limit configs ordered by creation time DESC.
func (s *PoolConfigStore) ListRecent(_ context.Context, limit int) ([]*domain.PoolConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.PoolConfig, 0, len(s.configs))
	for _, c := range s.configs {
		cfgCopy := *c
		result = append(result, &cfgCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt > result[j].CreatedAt
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ storage.PoolConfigStore = (*PoolConfigStore)(nil)
