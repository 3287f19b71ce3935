package memory

import (
	"context"
	"errors"
	"testing"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

func TestPoolConfigStore_InsertAndGetByKey(t *testing.T) {
	store := NewPoolConfigStore()
	ctx := context.Background()

	cfg := &domain.PoolConfig{
		Key:        "config1",
		Wallet:     "wallet1",
		FeeClaimer: "treasury1",
		QuoteMint:  "So11111111111111111111111111111111111111112",
		Preset:     "standard",
		CreatedAt:  1704067200000,
	}

	if err := store.Insert(ctx, cfg); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.GetByKey(ctx, "config1")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if result.Preset != "standard" {
		t.Errorf("Preset mismatch: got %s", result.Preset)
	}
}

func TestPoolConfigStore_InsertDuplicate(t *testing.T) {
	store := NewPoolConfigStore()
	ctx := context.Background()

	cfg := &domain.PoolConfig{Key: "config1", Wallet: "wallet1"}
	if err := store.Insert(ctx, cfg); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Insert(ctx, cfg); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestPoolConfigStore_GetByKeyNotFound(t *testing.T) {
	store := NewPoolConfigStore()

	_, err := store.GetByKey(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPoolConfigStore_ListRecent(t *testing.T) {
	store := NewPoolConfigStore()
	ctx := context.Background()

	for i, key := range []string{"old", "mid", "new"} {
		cfg := &domain.PoolConfig{Key: key, Wallet: "wallet1", CreatedAt: int64(1000 * (i + 1))}
		if err := store.Insert(ctx, cfg); err != nil {
			t.Fatalf("Insert %s: %v", key, err)
		}
	}

	result, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(result))
	}
	if result[0].Key != "new" || result[1].Key != "mid" {
		t.Errorf("unexpected order: %s, %s", result[0].Key, result[1].Key)
	}
}

func TestPoolConfigStore_ListRecentEmpty(t *testing.T) {
	store := NewPoolConfigStore()

	result, err := store.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty slice, got %d entries", len(result))
	}
}
