package memory

import (
	"context"
	"errors"
	"testing"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

func TestSigningKeyStore_PutAndGet(t *testing.T) {
	store := NewSigningKeyStore()
	ctx := context.Background()

	key := &domain.SigningKey{
		Wallet:    "wallet1",
		Subject:   "mint1",
		Role:      domain.KeyRoleMint,
		SecretKey: "c2VjcmV0",
		CreatedAt: 1704067200000,
	}

	if err := store.Put(ctx, key); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	result, err := store.Get(ctx, "wallet1", "mint1", domain.KeyRoleMint)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if result.SecretKey != "c2VjcmV0" {
		t.Errorf("SecretKey mismatch: got %s", result.SecretKey)
	}
}

func TestSigningKeyStore_CompositeKeyIsolation(t *testing.T) {
	store := NewSigningKeyStore()
	ctx := context.Background()

	// Same subject under two roles must be two records.
	configKey := &domain.SigningKey{
		Wallet: "wallet1", Subject: "subj1", Role: domain.KeyRoleConfig, SecretKey: "YQ==",
	}
	mintKey := &domain.SigningKey{
		Wallet: "wallet1", Subject: "subj1", Role: domain.KeyRoleMint, SecretKey: "Yg==",
	}

	if err := store.Put(ctx, configKey); err != nil {
		t.Fatalf("Put config: %v", err)
	}
	if err := store.Put(ctx, mintKey); err != nil {
		t.Fatalf("Put mint: %v", err)
	}

	got, err := store.Get(ctx, "wallet1", "subj1", domain.KeyRoleConfig)
	if err != nil {
		t.Fatalf("Get config: %v", err)
	}
	if got.SecretKey != "YQ==" {
		t.Errorf("config secret mismatch: got %s", got.SecretKey)
	}

	// Wrong wallet misses.
	if _, err := store.Get(ctx, "wallet2", "subj1", domain.KeyRoleConfig); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign wallet, got %v", err)
	}
}

func TestSigningKeyStore_GetNotFound(t *testing.T) {
	store := NewSigningKeyStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "wallet1", "nope", domain.KeyRoleMint)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSigningKeyStore_PutOverwrites(t *testing.T) {
	store := NewSigningKeyStore()
	ctx := context.Background()

	key := &domain.SigningKey{
		Wallet: "wallet1", Subject: "mint1", Role: domain.KeyRoleMint, SecretKey: "b2xk",
	}
	if err := store.Put(ctx, key); err != nil {
		t.Fatalf("Put: %v", err)
	}

	key.SecretKey = "bmV3"
	if err := store.Put(ctx, key); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, err := store.Get(ctx, "wallet1", "mint1", domain.KeyRoleMint)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SecretKey != "bmV3" {
		t.Errorf("expected overwritten secret, got %s", got.SecretKey)
	}
}

func TestSigningKeyStore_PutInvalid(t *testing.T) {
	store := NewSigningKeyStore()
	ctx := context.Background()

	cases := []*domain.SigningKey{
		nil,
		{Subject: "s", Role: domain.KeyRoleMint, SecretKey: "x"},
		{Wallet: "w", Role: domain.KeyRoleMint, SecretKey: "x"},
		{Wallet: "w", Subject: "s", Role: domain.KeyRoleMint},
		{Wallet: "w", Subject: "s", Role: "treasury", SecretKey: "x"},
	}

	for i, key := range cases {
		if err := store.Put(ctx, key); !errors.Is(err, storage.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}
