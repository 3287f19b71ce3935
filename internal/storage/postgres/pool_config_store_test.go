package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

func TestPoolConfigStore_InsertAndGetByKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPoolConfigStore(pool)
	ctx := context.Background()

	cfg := &domain.PoolConfig{
		Key:        "Config111",
		Wallet:     "Wallet111",
		FeeClaimer: "Treasury111",
		QuoteMint:  "So11111111111111111111111111111111111111112",
		Preset:     "standard",
		CreatedAt:  1700000000000,
	}

	err := store.Insert(ctx, cfg)
	require.NoError(t, err)

	retrieved, err := store.GetByKey(ctx, "Config111")
	require.NoError(t, err)

	assert.Equal(t, cfg.Key, retrieved.Key)
	assert.Equal(t, cfg.Wallet, retrieved.Wallet)
	assert.Equal(t, cfg.FeeClaimer, retrieved.FeeClaimer)
	assert.Equal(t, cfg.QuoteMint, retrieved.QuoteMint)
	assert.Equal(t, cfg.Preset, retrieved.Preset)
	assert.Equal(t, cfg.CreatedAt, retrieved.CreatedAt)
}

func TestPoolConfigStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPoolConfigStore(pool)
	ctx := context.Background()

	cfg := &domain.PoolConfig{Key: "Config111", Wallet: "Wallet111", CreatedAt: 1}

	require.NoError(t, store.Insert(ctx, cfg))

	err := store.Insert(ctx, cfg)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestPoolConfigStore_GetByKeyNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPoolConfigStore(pool)

	_, err := store.GetByKey(context.Background(), "Ghost111")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPoolConfigStore_ListRecent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPoolConfigStore(pool)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		cfg := &domain.PoolConfig{
			Key:       fmt.Sprintf("Config%d", i),
			Wallet:    "Wallet111",
			CreatedAt: int64(i * 1000),
		}
		require.NoError(t, store.Insert(ctx, cfg))
	}

	configs, err := store.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, configs, 3)

	assert.Equal(t, "Config5", configs[0].Key)
	assert.Equal(t, "Config4", configs[1].Key)
	assert.Equal(t, "Config3", configs[2].Key)
}

func TestPoolConfigStore_ListRecentEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPoolConfigStore(pool)

	configs, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, configs)
	assert.NotNil(t, configs)
}
