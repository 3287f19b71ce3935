package memory

import (
	"context"
	"errors"
	"testing"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

func launchFixture(mint string, launchedAt int64) *domain.TokenLaunch {
	return &domain.TokenLaunch{
		Mint:            mint,
		Pool:            "pool-" + mint,
		ConfigKey:       "config1",
		Wallet:          "wallet1",
		Name:            "Token " + mint,
		Symbol:          "TK",
		MetadataURI:     "ipfs://meta-" + mint,
		DepositLamports: 1_000_000,
		FeeLamports:     10_000,
		LaunchedAt:      launchedAt,
	}
}

func TestTokenLaunchStore_InsertAndGetByMint(t *testing.T) {
	store := NewTokenLaunchStore()
	ctx := context.Background()

	if err := store.Insert(ctx, launchFixture("mint1", 1704067200000)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatalf("GetByMint failed: %v", err)
	}
	if result.Pool != "pool-mint1" {
		t.Errorf("Pool mismatch: got %s", result.Pool)
	}
}

func TestTokenLaunchStore_InsertDuplicateMint(t *testing.T) {
	store := NewTokenLaunchStore()
	ctx := context.Background()

	if err := store.Insert(ctx, launchFixture("mint1", 1000)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.Insert(ctx, launchFixture("mint1", 2000)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestTokenLaunchStore_GetByMintNotFound(t *testing.T) {
	store := NewTokenLaunchStore()

	_, err := store.GetByMint(context.Background(), "ghost")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenLaunchStore_ListByLaunchTime(t *testing.T) {
	store := NewTokenLaunchStore()
	ctx := context.Background()

	for i, mint := range []string{"a", "b", "c"} {
		if err := store.Insert(ctx, launchFixture(mint, int64(1000*(i+1)))); err != nil {
			t.Fatalf("Insert %s: %v", mint, err)
		}
	}

	// Newest first.
	desc, err := store.ListByLaunchTime(ctx, 10, 0, false)
	if err != nil {
		t.Fatalf("ListByLaunchTime: %v", err)
	}
	if len(desc) != 3 {
		t.Fatalf("expected 3 launches, got %d", len(desc))
	}
	if desc[0].Mint != "c" || desc[2].Mint != "a" {
		t.Errorf("unexpected desc order: %s, %s, %s", desc[0].Mint, desc[1].Mint, desc[2].Mint)
	}

	// Oldest first with limit and offset.
	asc, err := store.ListByLaunchTime(ctx, 1, 1, true)
	if err != nil {
		t.Fatalf("ListByLaunchTime asc: %v", err)
	}
	if len(asc) != 1 || asc[0].Mint != "b" {
		t.Errorf("expected [b], got %v", asc)
	}
}

func TestTokenLaunchStore_ListEmpty(t *testing.T) {
	store := NewTokenLaunchStore()

	result, err := store.ListByLaunchTime(context.Background(), 10, 0, false)
	if err != nil {
		t.Fatalf("ListByLaunchTime: %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Errorf("expected empty slice, got %v", result)
	}
}

func TestTokenLaunchStore_ListOffsetPastEnd(t *testing.T) {
	store := NewTokenLaunchStore()
	ctx := context.Background()

	if err := store.Insert(ctx, launchFixture("mint1", 1000)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	result, err := store.ListByLaunchTime(ctx, 10, 5, false)
	if err != nil {
		t.Fatalf("ListByLaunchTime: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty slice, got %d entries", len(result))
	}
}
