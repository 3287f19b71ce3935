package stub

import (
	"context"
	"errors"

	"dbc-launchpad/internal/solana"
)

// ErrUnavailable simulates an unreachable RPC node.
var ErrUnavailable = errors.New("rpc unavailable")

// RPCClient implements solana.RPCClient for testing.
type RPCClient struct {
	Blockhash solana.Blockhash
	Statuses  map[string]*solana.SignatureStatus
	Balances  map[string]uint64
	Fail      bool // when set, every call returns ErrUnavailable
}

// NewRPCClient creates a new stub RPC client with a fixed valid blockhash.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Blockhash: solana.Blockhash{
			Hash:                 "J7rBdM6AecPDEZp8aPq5iPSNKVkU5Q76F3oAV4eW5wsW",
			LastValidBlockHeight: 1,
		},
		Statuses: make(map[string]*solana.SignatureStatus),
		Balances: make(map[string]uint64),
	}
}

// Compile-time interface check.
var _ solana.RPCClient = (*RPCClient)(nil)

// GetLatestBlockhash returns the fixed blockhash.
func (c *RPCClient) GetLatestBlockhash(_ context.Context) (solana.Blockhash, error) {
	if c.Fail {
		return solana.Blockhash{}, ErrUnavailable
	}
	return c.Blockhash, nil
}

// GetSignatureStatuses returns stored statuses in input order; unknown
// signatures yield nil entries.
func (c *RPCClient) GetSignatureStatuses(_ context.Context, signatures []string) ([]*solana.SignatureStatus, error) {
	if c.Fail {
		return nil, ErrUnavailable
	}
	statuses := make([]*solana.SignatureStatus, len(signatures))
	for i, sig := range signatures {
		statuses[i] = c.Statuses[sig]
	}
	return statuses, nil
}

// GetBalance returns the stored balance, zero when absent.
func (c *RPCClient) GetBalance(_ context.Context, pubkey string) (uint64, error) {
	if c.Fail {
		return 0, ErrUnavailable
	}
	return c.Balances[pubkey], nil
}

// MarkConfirmed records a confirmed status for the signature.
func (c *RPCClient) MarkConfirmed(signature string) {
	c.Statuses[signature] = &solana.SignatureStatus{
		Slot:               1,
		ConfirmationStatus: "confirmed",
	}
}
