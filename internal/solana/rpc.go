package solana

import "context"

// RPCClient defines the Solana RPC HTTP interface this service consumes.
type RPCClient interface {
	// GetLatestBlockhash retrieves the latest blockhash for building transactions.
	GetLatestBlockhash(ctx context.Context) (Blockhash, error)

	// GetSignatureStatuses retrieves confirmation status for signatures, in order.
	// A nil entry means the signature is unknown to the cluster.
	GetSignatureStatuses(ctx context.Context, signatures []string) ([]*SignatureStatus, error)

	// GetBalance retrieves an account's lamport balance.
	GetBalance(ctx context.Context, pubkey string) (uint64, error)
}
