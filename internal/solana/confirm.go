package solana

import (
	"context"
	"fmt"
	"time"
)

// DefaultConfirmTimeout bounds how long a confirmation wait may block.
const DefaultConfirmTimeout = 60 * time.Second

// ErrNotConfirmed is returned when a signature cannot be confirmed.
var ErrNotConfirmed = fmt.Errorf("transaction not confirmed")

// ConfirmationService checks whether a reported transaction signature has
// landed on-chain. It asks the RPC node first; if the signature is not yet
// visible it falls back to a blocking WebSocket wait.
type ConfirmationService struct {
	rpc     RPCClient
	ws      WSClient // optional; nil disables the blocking wait
	timeout time.Duration
}

// NewConfirmationService creates a confirmation service. ws may be nil.
func NewConfirmationService(rpc RPCClient, ws WSClient) *ConfirmationService {
	return &ConfirmationService{rpc: rpc, ws: ws, timeout: DefaultConfirmTimeout}
}

// Confirm returns nil once the signature has reached confirmed commitment
// without an execution error, and ErrNotConfirmed otherwise.
func (s *ConfirmationService) Confirm(ctx context.Context, signature string) error {
	if signature == "" {
		return fmt.Errorf("empty signature")
	}

	statuses, err := s.rpc.GetSignatureStatuses(ctx, []string{signature})
	if err != nil {
		return fmt.Errorf("get signature status: %w", err)
	}
	if len(statuses) > 0 && statuses[0] != nil {
		if statuses[0].Confirmed() {
			return nil
		}
		if statuses[0].Err != nil {
			return fmt.Errorf("%w: transaction failed on-chain", ErrNotConfirmed)
		}
	}

	if s.ws == nil {
		return fmt.Errorf("%w: signature %s not visible", ErrNotConfirmed, signature)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.ws.WaitForSignature(waitCtx, signature)
	if err != nil {
		return fmt.Errorf("%w: wait for signature: %v", ErrNotConfirmed, err)
	}
	if !result.Confirmed() {
		return fmt.Errorf("%w: transaction failed on-chain", ErrNotConfirmed)
	}
	return nil
}
