package solana

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Blockhash is a recent blockhash from getLatestBlockhash.
type Blockhash struct {
	Hash                 string // base58
	LastValidBlockHeight int64
}

// Bytes decodes the base58 hash into the 32 bytes a message embeds.
func (b Blockhash) Bytes() ([32]byte, error) {
	var out [32]byte
	decoded, err := base58.Decode(b.Hash)
	if err != nil {
		return out, fmt.Errorf("decode blockhash: %w", err)
	}
	if len(decoded) != 32 {
		return out, fmt.Errorf("blockhash must be 32 bytes, got %d", len(decoded))
	}
	copy(out[:], decoded)
	return out, nil
}

// SignatureStatus is one entry from getSignatureStatuses.
type SignatureStatus struct {
	Slot               int64
	Confirmations      *int64 // nil once rooted
	ConfirmationStatus string // processed | confirmed | finalized
	Err                interface{}
}

// Confirmed reports whether the transaction reached at least confirmed
// commitment without an execution error.
func (s *SignatureStatus) Confirmed() bool {
	if s == nil || s.Err != nil {
		return false
	}
	return s.ConfirmationStatus == "confirmed" || s.ConfirmationStatus == "finalized"
}
