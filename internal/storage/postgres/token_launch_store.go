package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/storage"
)

// TokenLaunchStore implements storage.TokenLaunchStore using PostgreSQL.
type TokenLaunchStore struct {
	pool *Pool
}

// NewTokenLaunchStore creates a new TokenLaunchStore.
func NewTokenLaunchStore(pool *Pool) *TokenLaunchStore {
	return &TokenLaunchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenLaunchStore = (*TokenLaunchStore)(nil)

// Insert adds a creation record. Returns ErrDuplicateKey if the mint already
// has one.
func (s *TokenLaunchStore) Insert(ctx context.Context, l *domain.TokenLaunch) error {
	if l == nil || l.Mint == "" || l.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO token_launches (
			mint, pool, config_key, wallet, name, symbol,
			metadata_uri, image_uri, deposit_lamports, fee_lamports, locked, launched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.pool.Exec(ctx, query,
		l.Mint,
		l.Pool,
		l.ConfigKey,
		l.Wallet,
		l.Name,
		l.Symbol,
		l.MetadataURI,
		l.ImageURI,
		int64(l.DepositLamports),
		int64(l.FeeLamports),
		l.Locked,
		l.LaunchedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert token launch: %w", err)
	}
	return nil
}

// GetByMint retrieves a launch by mint address. Returns ErrNotFound if not exists.
func (s *TokenLaunchStore) GetByMint(ctx context.Context, mint string) (*domain.TokenLaunch, error) {
	query := `
		SELECT mint, pool, config_key, wallet, name, symbol,
		       metadata_uri, image_uri, deposit_lamports, fee_lamports, locked, launched_at
		FROM token_launches
		WHERE mint = $1
	`

	row := s.pool.QueryRow(ctx, query, mint)
	l, err := scanTokenLaunch(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token launch by mint: %w", err)
	}
	return l, nil
}

// ListByLaunchTime retrieves launches ordered by launch time.
func (s *TokenLaunchStore) ListByLaunchTime(ctx context.Context, limit, offset int, asc bool) ([]*domain.TokenLaunch, error) {
	direction := "DESC"
	if asc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT mint, pool, config_key, wallet, name, symbol,
		       metadata_uri, image_uri, deposit_lamports, fee_lamports, locked, launched_at
		FROM token_launches
		ORDER BY launched_at %s, mint ASC
		LIMIT $1 OFFSET $2
	`, direction)

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list token launches: %w", err)
	}
	defer rows.Close()

	launches := make([]*domain.TokenLaunch, 0)
	for rows.Next() {
		l, err := scanTokenLaunch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token launch row: %w", err)
		}
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token launch rows: %w", err)
	}

	return launches, nil
}

// scanTokenLaunch scans a single row into a TokenLaunch.
func scanTokenLaunch(row pgx.Row) (*domain.TokenLaunch, error) {
	var l domain.TokenLaunch
	var deposit, fee int64

	err := row.Scan(
		&l.Mint,
		&l.Pool,
		&l.ConfigKey,
		&l.Wallet,
		&l.Name,
		&l.Symbol,
		&l.MetadataURI,
		&l.ImageURI,
		&deposit,
		&fee,
		&l.Locked,
		&l.LaunchedAt,
	)
	if err != nil {
		return nil, err
	}

	l.DepositLamports = uint64(deposit)
	l.FeeLamports = uint64(fee)
	return &l, nil
}
