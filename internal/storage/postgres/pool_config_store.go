package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// PoolConfigStore implements storage.PoolConfigStore using PostgreSQL.
type PoolConfigStore struct {
	pool *Pool
}

// NewPoolConfigStore creates a new PoolConfigStore.
func NewPoolConfigStore(pool *Pool) *PoolConfigStore {
	return &PoolConfigStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PoolConfigStore = (*PoolConfigStore)(nil)

// Insert adds a new config record. Returns ErrDuplicateKey if the config key exists.
func (s *PoolConfigStore) Insert(ctx context.Context, c *domain.PoolConfig) error {
	if c == nil || c.Key == "" || c.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO pool_configs (config_key, wallet, fee_claimer, quote_mint, preset, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		c.Key,
		c.Wallet,
		c.FeeClaimer,
		c.QuoteMint,
		c.Preset,
		c.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert pool config: %w", err)
	}
	return nil
}

// GetByKey retrieves a config by its public key. Returns ErrNotFound if not exists.
func (s *PoolConfigStore) GetByKey(ctx context.Context, key string) (*domain.PoolConfig, error) {
	query := `
		SELECT config_key, wallet, fee_claimer, quote_mint, preset, created_at
		FROM pool_configs
		WHERE config_key = $1
	`

	row := s.pool.QueryRow(ctx, query, key)
	c, err := scanPoolConfig(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get pool config by key: %w", err)
	}
	return c, nil
}

// ListRecent retrieves up to limit configs ordered by creation time DESC.
func (s *PoolConfigStore) ListRecent(ctx context.Context, limit int) ([]*domain.PoolConfig, error) {
	query := `
		SELECT config_key, wallet, fee_claimer, quote_mint, preset, created_at
		FROM pool_configs
		ORDER BY created_at DESC, config_key ASC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent pool configs: %w", err)
	}
	defer rows.Close()

	configs := make([]*domain.PoolConfig, 0)
	for rows.Next() {
		c, err := scanPoolConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pool config row: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pool config rows: %w", err)
	}

	return configs, nil
}

// scanPoolConfig scans a single row into a PoolConfig.
func scanPoolConfig(row pgx.Row) (*domain.PoolConfig, error) {
	var c domain.PoolConfig
	err := row.Scan(
		&c.Key,
		&c.Wallet,
		&c.FeeClaimer,
		&c.QuoteMint,
		&c.Preset,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
