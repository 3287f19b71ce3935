package memory

import (
	"context"
	"sync"
	"time"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// LaunchStatsStore is an in-memory implementation of storage.LaunchStatsStore.
type LaunchStatsStore struct {
	mu     sync.RWMutex
	events []domain.LaunchEvent
}

// NewLaunchStatsStore creates a new in-memory launch stats store.
func NewLaunchStatsStore() *LaunchStatsStore {
	return &LaunchStatsStore{}
}

// RecordLaunch appends one launch event.
func (s *LaunchStatsStore) RecordLaunch(_ context.Context, e *domain.LaunchEvent) error {
	if e == nil || e.Mint == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, *e)
	return nil
}

// Aggregate computes counters over all recorded launches.
func (s *LaunchStatsStore) Aggregate(_ context.Context) (*domain.PlatformStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()

	stats := &domain.PlatformStats{}
	for _, e := range s.events {
		stats.TotalLaunches++
		stats.TotalDepositLamports += e.DepositLamports
		stats.TotalFeeLamports += e.FeeLamports
		if e.Locked {
			stats.LockedCount++
		}
		if e.LaunchedAt >= cutoff {
			stats.Launches24h++
		}
	}
	return stats, nil
}

var _ storage.LaunchStatsStore = (*LaunchStatsStore)(nil)
