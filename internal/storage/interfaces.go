package storage

import (
	"context"

	"dbc-launchpad/internal/domain"
)

// SigningKeyStore provides custody of server-generated keypairs.
// Keys are written once during creation and read once during co-signing;
// writes must be visible to subsequent reads (read-after-write within one
// store instance), since the write and the read happen in different requests.
type SigningKeyStore interface {
	// Put stores a signing key, replacing any record with the same
	// (wallet, subject, role) tuple.
	Put(ctx context.Context, key *domain.SigningKey) error

	// Get retrieves a signing key by composite key. Returns ErrNotFound if
	// no record exists; callers must treat a miss as fatal for the request.
	Get(ctx context.Context, wallet, subject string, role domain.KeyRole) (*domain.SigningKey, error)
}

// PoolConfigStore provides access to pool_configs storage.
type PoolConfigStore interface {
	// Insert adds a new config record. Returns ErrDuplicateKey if the config
	// key already exists.
	Insert(ctx context.Context, c *domain.PoolConfig) error

	// GetByKey retrieves a config by its public key. Returns ErrNotFound if
	// not exists.
	GetByKey(ctx context.Context, key string) (*domain.PoolConfig, error)

	// ListRecent retrieves up to limit configs ordered by creation time DESC.
	ListRecent(ctx context.Context, limit int) ([]*domain.PoolConfig, error)
}

// TokenLaunchStore provides access to token_launches storage.
type TokenLaunchStore interface {
	// Insert adds a creation record. Returns ErrDuplicateKey if the mint
	// already has one; launch records are write-once.
	Insert(ctx context.Context, l *domain.TokenLaunch) error

	// GetByMint retrieves a launch by mint address. Returns ErrNotFound if
	// not exists.
	GetByMint(ctx context.Context, mint string) (*domain.TokenLaunch, error)

	// ListByLaunchTime retrieves launches ordered by launch time, newest
	// first when asc is false. An empty store yields an empty slice.
	ListByLaunchTime(ctx context.Context, limit, offset int, asc bool) ([]*domain.TokenLaunch, error)
}

// LaunchStatsStore provides the analytics path for platform statistics.
type LaunchStatsStore interface {
	// RecordLaunch appends one launch event.
	RecordLaunch(ctx context.Context, e *domain.LaunchEvent) error

	// Aggregate computes platform-wide counters over all recorded launches.
	Aggregate(ctx context.Context) (*domain.PlatformStats, error)
}
