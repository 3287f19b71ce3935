package solana

import "context"

// WSClient defines the Solana WebSocket subscription interface this service
// consumes: one-shot signature confirmation waits.
type WSClient interface {
	// WaitForSignature blocks until the signature reaches confirmed
	// commitment, the context is cancelled, or the connection fails.
	WaitForSignature(ctx context.Context, signature string) (*SignatureResult, error)

	// Close closes the WebSocket connection.
	Close() error
}

// SignatureResult is the payload of a signature notification. The node sends
// exactly one notification per subscription, then removes the subscription.
type SignatureResult struct {
	Signature string
	Slot      int64
	Err       interface{} // non-nil when the transaction failed on-chain
}

// Confirmed reports whether the transaction landed without an error.
func (r *SignatureResult) Confirmed() bool {
	return r != nil && r.Err == nil
}
