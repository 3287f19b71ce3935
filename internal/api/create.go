package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dbc-launchpad/internal/dbc"
	"dbc-launchpad/internal/domain"
	"dbc-launchpad/internal/observability"
	"dbc-launchpad/internal/solana"
)

// tokenRequest is the client-supplied token descriptor.
type tokenRequest struct {
	Name        string  `json:"name"`
	Ticker      string  `json:"ticker"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Website     *string `json:"website,omitempty"`
	Twitter     *string `json:"twitter,omitempty"`
	Telegram    *string `json:"telegram,omitempty"`
}

// validate reports the first missing required field.
func (t *tokenRequest) validate() error {
	if t == nil {
		return fmt.Errorf("token is required")
	}
	if t.Name == "" {
		return fmt.Errorf("token.name is required")
	}
	if t.Ticker == "" {
		return fmt.Errorf("token.ticker is required")
	}
	if t.ImageURL == "" {
		return fmt.Errorf("token.imageUrl is required")
	}
	return nil
}

func (t *tokenRequest) descriptor() *domain.TokenDescriptor {
	return &domain.TokenDescriptor{
		Name:        t.Name,
		Ticker:      t.Ticker,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		Website:     t.Website,
		Twitter:     t.Twitter,
		Telegram:    t.Telegram,
	}
}

type createPoolRequest struct {
	WalletAddress string        `json:"walletAddress"`
	ConfigKey     string        `json:"configKey"`
	Token         *tokenRequest `json:"token"`
	BuyAmount     uint64        `json:"buyAmount,omitempty"`
}

type createPoolResponse struct {
	Transactions []string `json:"transactions"`
	Mint         string   `json:"mint"`
	ATA          string   `json:"ata"`
	Pool         string   `json:"pool"`
	MetadataURI  string   `json:"metadataUri"`
}

// handleCreatePool builds an unsigned pool-creation transaction for an
// existing config: publish metadata, generate and persist the mint keypair,
// then hand the transaction back for the client to sign.
func (s *Server) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	var req createPoolRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// Validation happens before any store write or upstream call.
	if req.WalletAddress == "" {
		writeError(w, http.StatusBadRequest, "walletAddress is required")
		return
	}
	if req.ConfigKey == "" {
		writeError(w, http.StatusBadRequest, "configKey is required")
		return
	}
	if err := req.Token.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	wallet, err := solana.ParsePubkey(req.WalletAddress)
	if err != nil {
		writeError(w, http.StatusBadRequest, "walletAddress: "+err.Error())
		return
	}
	config, err := solana.ParsePubkey(req.ConfigKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "configKey: "+err.Error())
		return
	}

	ctx := r.Context()

	published, err := s.publisher.Publish(ctx, req.Token.descriptor())
	observability.RecordMetadataPublish(err)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "publish metadata: "+err.Error())
		return
	}

	mintKP, err := s.custodyKeypair(ctx, req.WalletAddress, domain.KeyRoleMint)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	tx, err := s.builder.BuildPoolTransaction(ctx, dbc.PoolParams{
		Payer:       wallet,
		Config:      config,
		Mint:        mintKP.Pubkey,
		Name:        published.Name,
		Symbol:      published.Symbol,
		MetadataURI: published.URI,
		BuyLamports: req.BuyAmount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "build pool transaction: "+err.Error())
		return
	}
	observability.RecordTransactionBuilt("pool")

	pool, err := dbc.DerivePoolAddress(config, mintKP.Pubkey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "derive pool address: "+err.Error())
		return
	}
	ata, err := solana.FindAssociatedTokenAddress(wallet, mintKP.Pubkey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, createPoolResponse{
		Transactions: []string{tx.SerializeBase64()},
		Mint:         mintKP.Pubkey.String(),
		ATA:          ata.String(),
		Pool:         pool.String(),
		MetadataURI:  published.URI,
	})
}

type createTokenRequest struct {
	WalletAddress string        `json:"walletAddress"`
	Token         *tokenRequest `json:"token"`
	Decimals      *int          `json:"decimals,omitempty"`
	InitialSupply *uint64       `json:"initialSupply,omitempty"`
	Preset        string        `json:"preset,omitempty"`
	BuyAmount     uint64        `json:"buyAmount,omitempty"`
}

type createTokenResponse struct {
	Transactions    []string `json:"transactions"`
	Mint            string   `json:"mint"`
	Pool            string   `json:"pool"`
	PoolConfigKey   string   `json:"poolConfigKey"`
	MetadataURI     string   `json:"metadataUri"`
	DepositLamports uint64   `json:"depositLamports"`
	FeeLamports     uint64   `json:"feeLamports"`
	BuyLamports     uint64   `json:"buyLamports"`
}

// handleCreateToken runs the full launch build: publish metadata, generate
// and persist config and mint keypairs, record the config, then build the
// config-creation and pool-creation transactions.
func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req createTokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.WalletAddress == "" {
		writeError(w, http.StatusBadRequest, "walletAddress is required")
		return
	}
	if err := req.Token.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Decimals != nil && (*req.Decimals < 0 || *req.Decimals > 9) {
		writeError(w, http.StatusBadRequest, "decimals must be between 0 and 9")
		return
	}
	if req.InitialSupply != nil && *req.InitialSupply == 0 {
		writeError(w, http.StatusBadRequest, "initialSupply must be greater than zero")
		return
	}
	wallet, err := solana.ParsePubkey(req.WalletAddress)
	if err != nil {
		writeError(w, http.StatusBadRequest, "walletAddress: "+err.Error())
		return
	}
	preset := dbc.DefaultPreset()
	if req.Preset != "" {
		preset, err = dbc.PresetByID(req.Preset)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	decimals := dbc.DefaultDecimals
	if req.Decimals != nil {
		decimals = uint8(*req.Decimals)
	}
	initialSupply := dbc.DefaultInitialSupply
	if req.InitialSupply != nil {
		initialSupply = *req.InitialSupply
	}

	ctx := r.Context()

	published, err := s.publisher.Publish(ctx, req.Token.descriptor())
	observability.RecordMetadataPublish(err)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "publish metadata: "+err.Error())
		return
	}

	// Both keypairs are custodied before any transaction leaves the server.
	configKP, err := s.custodyKeypair(ctx, req.WalletAddress, domain.KeyRoleConfig)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	mintKP, err := s.custodyKeypair(ctx, req.WalletAddress, domain.KeyRoleMint)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.configs.Insert(ctx, &domain.PoolConfig{
		Key:        configKP.Pubkey.String(),
		Wallet:     req.WalletAddress,
		FeeClaimer: s.treasury.String(),
		QuoteMint:  solana.WSOLMint.String(),
		Preset:     preset.ID,
		CreatedAt:  time.Now().UnixMilli(),
	}); err != nil {
		s.writeDomainError(w, fmt.Errorf("record pool config: %w", err))
		return
	}

	configTx, err := s.builder.BuildConfigTransaction(ctx, dbc.ConfigParams{
		Payer:         wallet,
		Config:        configKP.Pubkey,
		FeeClaimer:    s.treasury,
		QuoteMint:     solana.WSOLMint,
		Preset:        preset,
		Decimals:      decimals,
		InitialSupply: initialSupply,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "build config transaction: "+err.Error())
		return
	}
	observability.RecordTransactionBuilt("config")

	poolTx, err := s.builder.BuildPoolTransaction(ctx, dbc.PoolParams{
		Payer:       wallet,
		Config:      configKP.Pubkey,
		Mint:        mintKP.Pubkey,
		Name:        published.Name,
		Symbol:      published.Symbol,
		MetadataURI: published.URI,
		BuyLamports: req.BuyAmount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "build pool transaction: "+err.Error())
		return
	}
	observability.RecordTransactionBuilt("pool")

	pool, err := dbc.DerivePoolAddress(configKP.Pubkey, mintKP.Pubkey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "derive pool address: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, createTokenResponse{
		Transactions:    []string{configTx.SerializeBase64(), poolTx.SerializeBase64()},
		Mint:            mintKP.Pubkey.String(),
		Pool:            pool.String(),
		PoolConfigKey:   configKP.Pubkey.String(),
		MetadataURI:     published.URI,
		DepositLamports: preset.DepositLamports,
		FeeLamports:     preset.FeeLamports,
		BuyLamports:     req.BuyAmount,
	})
}

// custodyKeypair generates a fresh keypair and persists it under the wallet
// before the caller ever sees a transaction referencing it.
func (s *Server) custodyKeypair(ctx context.Context, wallet string, role domain.KeyRole) (*solana.Keypair, error) {
	kp, err := solana.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("generate %s keypair: %w", role, err)
	}

	if err := s.keys.Put(ctx, &domain.SigningKey{
		Wallet:    wallet,
		Subject:   kp.Pubkey.String(),
		Role:      role,
		SecretKey: kp.SecretKeyBase64(),
		CreatedAt: time.Now().UnixMilli(),
	}); err != nil {
		return nil, fmt.Errorf("custody %s keypair: %w", role, err)
	}

	observability.RecordKeypairGenerated(string(role))
	return kp, nil
}
