package memory

import (
	"context"
	"sort"
	"sync"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// TokenLaunchStore is an in-memory implementation of storage.TokenLaunchStore.
type TokenLaunchStore struct {
	mu       sync.RWMutex
	launches map[string]*domain.TokenLaunch // keyed by mint
}

// NewTokenLaunchStore creates a new in-memory token launch store.
func NewTokenLaunchStore() *TokenLaunchStore {
	return &TokenLaunchStore{
		launches: make(map[string]*domain.TokenLaunch),
	}
}

// Insert adds a creation record. Returns ErrDuplicateKey if the mint exists.
func (s *TokenLaunchStore) Insert(_ context.Context, l *domain.TokenLaunch) error {
	if l == nil || l.Mint == "" || l.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.launches[l.Mint]; exists {
		return storage.ErrDuplicateKey
	}

	launchCopy := *l
	s.launches[l.Mint] = &launchCopy
	return nil
}

// GetByMint retrieves a launch by mint address. Returns ErrNotFound if not exists.
func (s *TokenLaunchStore) GetByMint(_ context.Context, mint string) (*domain.TokenLaunch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, exists := s.launches[mint]
	if !exists {
		return nil, storage.ErrNotFound
	}

	launchCopy := *l
	return &launchCopy, nil
}

// ListByLaunchTime retrieves launches ordered by launch time.
func (s *TokenLaunchStore) ListByLaunchTime(_ context.Context, limit, offset int, asc bool) ([]*domain.TokenLaunch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TokenLaunch, 0, len(s.launches))
	for _, l := range s.launches {
		launchCopy := *l
		result = append(result, &launchCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if asc {
			return result[i].LaunchedAt < result[j].LaunchedAt
		}
		return result[i].LaunchedAt > result[j].LaunchedAt
	})

	if offset > 0 {
		if offset >= len(result) {
			return []*domain.TokenLaunch{}, nil
		}
		result = result[offset:]
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ storage.TokenLaunchStore = (*TokenLaunchStore)(nil)
