package signing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/solana"
	"dbc-launchpad/internal/storage"
)

// Sentinel errors mapped to HTTP statuses by the API layer.
var (
	// ErrMissingFields marks an incomplete or malformed request.
	ErrMissingFields = errors.New("missing required request fields")

	// ErrKeypairNotFound marks a required server-held key that could not be
	// located. Fatal for the whole request: no transaction is signed.
	ErrKeypairNotFound = errors.New("signing keypair not found")
)

// Request asks the coordinator to complete partially-signed transactions.
// Mint and ConfigKey identify the subjects whose custodied keys may be
// required; Transactions are base64-encoded wire bytes.
type Request struct {
	Wallet       string
	Mint         string
	ConfigKey    string
	Transactions []string
}

// Coordinator completes multi-signer transactions. The client wallet has
// already signed its slot; the coordinator resolves every remaining empty
// required-signer slot against the key store (plus the optional long-lived
// treasury key) and counter-signs.
//
// All-or-nothing: every key across every transaction is resolved before any
// signature is computed, so a lookup miss can never leave the batch partially
// completed. Message bytes are never mutated; ed25519 determinism makes the
// whole operation idempotent.
type Coordinator struct {
	keys     storage.SigningKeyStore
	treasury *solana.Keypair // may be nil
	logger   *log.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithTreasury supplies the long-lived treasury signing authority.
func WithTreasury(kp *solana.Keypair) CoordinatorOption {
	return func(c *Coordinator) {
		c.treasury = kp
	}
}

// WithLogger sets the coordinator logger.
func WithLogger(logger *log.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a Coordinator over the given key store.
func NewCoordinator(keys storage.SigningKeyStore, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		keys:   keys,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pendingSignature is one resolved (transaction, keypair) pair, held until
// every slot in the batch has been resolved.
type pendingSignature struct {
	tx *solana.Transaction
	kp *solana.Keypair
}

// SignTransactions completes each supplied transaction and returns the
// fully-signed base64 encodings in input order.
func (c *Coordinator) SignTransactions(ctx context.Context, req Request) ([]string, error) {
	if req.Wallet == "" || req.Mint == "" || req.ConfigKey == "" || len(req.Transactions) == 0 {
		return nil, ErrMissingFields
	}

	wallet, err := solana.ParsePubkey(req.Wallet)
	if err != nil {
		return nil, fmt.Errorf("%w: wallet: %v", ErrMissingFields, err)
	}
	mint, err := solana.ParsePubkey(req.Mint)
	if err != nil {
		return nil, fmt.Errorf("%w: mint: %v", ErrMissingFields, err)
	}
	config, err := solana.ParsePubkey(req.ConfigKey)
	if err != nil {
		return nil, fmt.Errorf("%w: config key: %v", ErrMissingFields, err)
	}

	// Phase 1: decode everything before touching the store.
	txs := make([]*solana.Transaction, len(req.Transactions))
	for i, encoded := range req.Transactions {
		tx, err := solana.DeserializeTransactionBase64(encoded)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs[i] = tx
	}

	// Phase 2: resolve every empty required-signer slot across the whole
	// batch. Any unresolvable key aborts before a single signature exists.
	var pending []pendingSignature
	resolved := make(map[solana.Pubkey]*solana.Keypair)
	for i, tx := range txs {
		for _, signer := range tx.MissingSigners() {
			if signer == wallet {
				// The caller's own slot is theirs to fill.
				continue
			}
			kp, ok := resolved[signer]
			if !ok {
				kp, err = c.resolveKey(ctx, req.Wallet, signer, mint, config)
				if err != nil {
					return nil, fmt.Errorf("transaction %d signer %s: %w", i, signer, err)
				}
				resolved[signer] = kp
			}
			pending = append(pending, pendingSignature{tx: tx, kp: kp})
		}
	}

	// Phase 3: sign. Signatures land in header-ordered slots; client-filled
	// slots are never touched.
	for _, p := range pending {
		if err := p.tx.Sign(p.kp); err != nil {
			return nil, fmt.Errorf("apply signature: %w", err)
		}
	}

	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.SerializeBase64()
	}

	c.logger.Printf("co-signed %d transactions for wallet %s (%d signatures)", len(txs), req.Wallet, len(pending))
	return out, nil
}

// resolveKey maps an empty signer slot to a custodied keypair. The role is
// inferred from which request subject the slot's pubkey matches.
func (c *Coordinator) resolveKey(ctx context.Context, wallet string, signer, mint, config solana.Pubkey) (*solana.Keypair, error) {
	if c.treasury != nil && signer == c.treasury.Pubkey {
		return c.treasury, nil
	}

	var role domain.KeyRole
	switch signer {
	case mint:
		role = domain.KeyRoleMint
	case config:
		role = domain.KeyRoleConfig
	default:
		return nil, fmt.Errorf("%w: %s matches no request subject", ErrKeypairNotFound, signer)
	}

	rec, err := c.keys.Get(ctx, wallet, signer.String(), role)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: no %s key for %s", ErrKeypairNotFound, role, signer)
		}
		return nil, fmt.Errorf("load %s key: %w", role, err)
	}

	kp, err := solana.KeypairFromBase64(rec.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s key: %w", role, err)
	}
	if kp.Pubkey != signer {
		return nil, fmt.Errorf("stored %s key does not match subject %s", role, signer)
	}
	return kp, nil
}
