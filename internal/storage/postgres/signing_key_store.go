package postgres

import (
	"context"
	"fmt"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// SigningKeyStore implements storage.SigningKeyStore using PostgreSQL.
type SigningKeyStore struct {
	pool *Pool
}

// NewSigningKeyStore creates a new SigningKeyStore.
func NewSigningKeyStore(pool *Pool) *SigningKeyStore {
	return &SigningKeyStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SigningKeyStore = (*SigningKeyStore)(nil)

// Put stores a signing key, replacing any record with the same
// (wallet, subject, role) tuple.
func (s *SigningKeyStore) Put(ctx context.Context, key *domain.SigningKey) error {
	if key == nil || key.Wallet == "" || key.Subject == "" || key.SecretKey == "" || !key.Role.Valid() {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO signing_keys (wallet, subject, role, secret_key, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wallet, subject, role)
		DO UPDATE SET secret_key = EXCLUDED.secret_key,
		              created_at = EXCLUDED.created_at,
		              updated_at = NOW()
	`

	_, err := s.pool.Exec(ctx, query,
		key.Wallet,
		key.Subject,
		string(key.Role),
		key.SecretKey,
		key.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("put signing key: %w", err)
	}
	return nil
}

// Get retrieves a signing key by composite key. Returns ErrNotFound if not exists.
func (s *SigningKeyStore) Get(ctx context.Context, wallet, subject string, role domain.KeyRole) (*domain.SigningKey, error) {
	query := `
		SELECT wallet, subject, role, secret_key, created_at
		FROM signing_keys
		WHERE wallet = $1 AND subject = $2 AND role = $3
	`

	var key domain.SigningKey
	var roleStr string

	row := s.pool.QueryRow(ctx, query, wallet, subject, string(role))
	err := row.Scan(&key.Wallet, &key.Subject, &roleStr, &key.SecretKey, &key.CreatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get signing key: %w", err)
	}

	key.Role = domain.KeyRole(roleStr)
	return &key, nil
}
