package clickhouse

import (
	"context"
	"fmt"
	"time"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// LaunchStatsStore implements storage.LaunchStatsStore using ClickHouse.
// Events are append-only; all counters are computed at query time.
type LaunchStatsStore struct {
	conn *Conn
}

// NewLaunchStatsStore creates a new LaunchStatsStore.
func NewLaunchStatsStore(conn *Conn) *LaunchStatsStore {
	return &LaunchStatsStore{conn: conn}
}

// Compile-time interface check.
var _ storage.LaunchStatsStore = (*LaunchStatsStore)(nil)

// RecordLaunch appends one launch event.
func (s *LaunchStatsStore) RecordLaunch(ctx context.Context, e *domain.LaunchEvent) error {
	if e == nil || e.Mint == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO launch_events (
			mint, wallet, deposit_lamports, fee_lamports, locked, launched_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	locked := uint8(0)
	if e.Locked {
		locked = 1
	}

	err := s.conn.Exec(ctx, query,
		e.Mint,
		e.Wallet,
		e.DepositLamports,
		e.FeeLamports,
		locked,
		e.LaunchedAt,
	)
	if err != nil {
		return fmt.Errorf("insert launch event: %w", err)
	}
	return nil
}

// Aggregate computes platform-wide counters over all recorded launches.
func (s *LaunchStatsStore) Aggregate(ctx context.Context) (*domain.PlatformStats, error) {
	query := `
		SELECT
			count() AS total_launches,
			countIf(launched_at >= ?) AS launches_24h,
			sum(deposit_lamports) AS total_deposit,
			sum(fee_lamports) AS total_fee,
			countIf(locked = 1) AS locked_count
		FROM launch_events
	`

	cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()

	var stats domain.PlatformStats
	row := s.conn.QueryRow(ctx, query, cutoff)
	err := row.Scan(
		&stats.TotalLaunches,
		&stats.Launches24h,
		&stats.TotalDepositLamports,
		&stats.TotalFeeLamports,
		&stats.LockedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate launch events: %w", err)
	}

	return &stats, nil
}
