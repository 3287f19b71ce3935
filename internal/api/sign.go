package api

import (
	"errors"
	"net/http"

	"dbc-launchpad/internal/observability"
	"dbc-launchpad/internal/signing"
	"dbc-launchpad/internal/solana"
)

type signTokenTxsRequest struct {
	WalletAddress  string `json:"walletAddress"`
	PoolConfigKey  string `json:"poolConfigKey"`
	Mint           string `json:"mint"`
	SignedConfigTx string `json:"signedConfigTx"`
	SignedPoolTx   string `json:"signedPoolTx"`
}

type signTokenTxsResponse struct {
	SignedConfigTx string `json:"signedConfigTx"`
	SignedPoolTx   string `json:"signedPoolTx"`
}

// handleSignTokenTxs co-signs the client-signed config and pool transactions.
// Either both come back fully signed or neither does.
func (s *Server) handleSignTokenTxs(w http.ResponseWriter, r *http.Request) {
	var req signTokenTxsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.WalletAddress == "" || req.PoolConfigKey == "" || req.Mint == "" ||
		req.SignedConfigTx == "" || req.SignedPoolTx == "" {
		writeError(w, http.StatusBadRequest, signing.ErrMissingFields.Error())
		return
	}

	signed, err := s.coordinator.SignTransactions(r.Context(), signing.Request{
		Wallet:       req.WalletAddress,
		Mint:         req.Mint,
		ConfigKey:    req.PoolConfigKey,
		Transactions: []string{req.SignedConfigTx, req.SignedPoolTx},
	})
	if err != nil {
		switch {
		case errors.Is(err, signing.ErrKeypairNotFound):
			observability.RecordSigningError("keypair_not_found")
		case errors.Is(err, solana.ErrInvalidTransaction):
			observability.RecordSigningError("decode")
		default:
			observability.RecordSigningError("internal")
		}
		s.writeDomainError(w, err)
		return
	}

	observability.RecordSignaturesApplied(len(signed))
	writeJSON(w, http.StatusOK, signTokenTxsResponse{
		SignedConfigTx: signed[0],
		SignedPoolTx:   signed[1],
	})
}
