package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

func TestLaunchStatsStore_RecordAndAggregate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStatsStore(conn)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	events := []*domain.LaunchEvent{
		{Mint: "Mint1", Wallet: "W1", DepositLamports: 1_000_000, FeeLamports: 10_000, Locked: true, LaunchedAt: now},
		{Mint: "Mint2", Wallet: "W2", DepositLamports: 2_000_000, FeeLamports: 20_000, Locked: false, LaunchedAt: now - time.Hour.Milliseconds()},
		{Mint: "Mint3", Wallet: "W1", DepositLamports: 500_000, FeeLamports: 5_000, Locked: true, LaunchedAt: now - 48*time.Hour.Milliseconds()},
	}
	for _, e := range events {
		require.NoError(t, store.RecordLaunch(ctx, e))
	}

	stats, err := store.Aggregate(ctx)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), stats.TotalLaunches)
	assert.Equal(t, uint64(2), stats.Launches24h)
	assert.Equal(t, uint64(3_500_000), stats.TotalDepositLamports)
	assert.Equal(t, uint64(35_000), stats.TotalFeeLamports)
	assert.Equal(t, uint64(2), stats.LockedCount)
}

func TestLaunchStatsStore_AggregateEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStatsStore(conn)

	stats, err := store.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(0), stats.TotalLaunches)
	assert.Equal(t, uint64(0), stats.Launches24h)
	assert.Equal(t, uint64(0), stats.TotalDepositLamports)
}

func TestLaunchStatsStore_RecordLaunchInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLaunchStatsStore(conn)
	ctx := context.Background()

	assert.ErrorIs(t, store.RecordLaunch(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.RecordLaunch(ctx, &domain.LaunchEvent{}), storage.ErrInvalidInput)
}
