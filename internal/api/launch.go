package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/observability"
	"dbc-launchpad/internal/solana"
)

type recordLaunchRequest struct {
	WalletAddress   string `json:"walletAddress"`
	Mint            string `json:"mint"`
	Pool            string `json:"pool"`
	ConfigKey       string `json:"configKey"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	MetadataURI     string `json:"metadataUri"`
	ImageURI        string `json:"imageUri"`
	Signature       string `json:"signature"`
	DepositLamports uint64 `json:"depositLamports,omitempty"`
	FeeLamports     uint64 `json:"feeLamports,omitempty"`
	Locked          bool   `json:"locked,omitempty"`
}

type recordLaunchResponse struct {
	Mint       string `json:"mint"`
	LaunchedAt int64  `json:"launchedAt"`
}

// handleRecordLaunch persists the creation record after the client reports a
// successful on-chain submission. The reported signature is verified before
// anything is written; creation records are write-once per mint.
func (s *Server) handleRecordLaunch(w http.ResponseWriter, r *http.Request) {
	var req recordLaunchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	for field, value := range map[string]string{
		"walletAddress": req.WalletAddress,
		"mint":          req.Mint,
		"pool":          req.Pool,
		"name":          req.Name,
		"symbol":        req.Symbol,
		"metadataUri":   req.MetadataURI,
		"signature":     req.Signature,
	} {
		if value == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", field))
			return
		}
	}

	ctx := r.Context()

	start := time.Now()
	err := s.confirmer.Confirm(ctx, req.Signature)
	observability.RecordConfirmationWait(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, solana.ErrNotConfirmed) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "verify signature: "+err.Error())
		return
	}

	launchedAt := time.Now().UnixMilli()
	launch := &domain.TokenLaunch{
		Mint:            req.Mint,
		Pool:            req.Pool,
		ConfigKey:       req.ConfigKey,
		Wallet:          req.WalletAddress,
		Name:            req.Name,
		Symbol:          req.Symbol,
		MetadataURI:     req.MetadataURI,
		ImageURI:        req.ImageURI,
		DepositLamports: req.DepositLamports,
		FeeLamports:     req.FeeLamports,
		Locked:          req.Locked,
		LaunchedAt:      launchedAt,
	}
	if err := s.launches.Insert(ctx, launch); err != nil {
		s.writeDomainError(w, fmt.Errorf("record launch: %w", err))
		return
	}
	observability.RecordLaunchRecorded()

	// Analytics write is best-effort: a stats miss must not fail a launch
	// that is already durably recorded.
	if err := s.stats.RecordLaunch(ctx, &domain.LaunchEvent{
		Mint:            req.Mint,
		Wallet:          req.WalletAddress,
		DepositLamports: req.DepositLamports,
		FeeLamports:     req.FeeLamports,
		Locked:          req.Locked,
		LaunchedAt:      launchedAt,
	}); err != nil {
		s.logger.Printf("record launch event for %s: %v", req.Mint, err)
	}

	writeJSON(w, http.StatusOK, recordLaunchResponse{
		Mint:       req.Mint,
		LaunchedAt: launchedAt,
	})
}

// poolConfigEntry is the JSON shape of one config record.
type poolConfigEntry struct {
	Key        string `json:"key"`
	Wallet     string `json:"wallet"`
	FeeClaimer string `json:"feeClaimer"`
	QuoteMint  string `json:"quoteMint"`
	Preset     string `json:"preset"`
	CreatedAt  int64  `json:"createdAt"`
}

const configListLimit = 100

// handlePoolConfigs returns full config records, newest first.
func (s *Server) handlePoolConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.configs.ListRecent(r.Context(), configListLimit)
	if err != nil {
		s.writeDomainError(w, fmt.Errorf("list pool configs: %w", err))
		return
	}

	entries := make([]poolConfigEntry, 0, len(configs))
	for _, c := range configs {
		entries = append(entries, poolConfigEntry{
			Key:        c.Key,
			Wallet:     c.Wallet,
			FeeClaimer: c.FeeClaimer,
			QuoteMint:  c.QuoteMint,
			Preset:     c.Preset,
			CreatedAt:  c.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"configs": entries})
}

// handleRecentPoolConfigs returns time-ordered config keys only.
func (s *Server) handleRecentPoolConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.configs.ListRecent(r.Context(), configListLimit)
	if err != nil {
		s.writeDomainError(w, fmt.Errorf("list pool configs: %w", err))
		return
	}

	keys := make([]string, 0, len(configs))
	for _, c := range configs {
		keys = append(keys, c.Key)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"keys": keys})
}
