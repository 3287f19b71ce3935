package dbc

import (
	"context"
	"fmt"

	"dbc-launchpad/internal/solana"
)

// Token parameter defaults applied when a creation request omits them.
const (
	DefaultDecimals      uint8  = 6
	DefaultInitialSupply uint64 = 1_000_000_000 // whole tokens
)

// ConfigParams describes a create-config build request.
type ConfigParams struct {
	Payer         solana.Pubkey // fee payer, the creator wallet
	Config        solana.Pubkey // freshly generated config account, must co-sign
	FeeClaimer    solana.Pubkey // treasury receiving trading fees
	QuoteMint     solana.Pubkey
	Preset        Preset
	Decimals      uint8  // base token decimals, 0 is valid
	InitialSupply uint64 // whole tokens minted; zero means DefaultInitialSupply
}

// PoolParams describes a create-pool build request.
type PoolParams struct {
	Payer       solana.Pubkey // fee payer, the creator wallet
	Config      solana.Pubkey // existing config account
	Mint        solana.Pubkey // freshly generated mint, must co-sign
	Name        string
	Symbol      string
	MetadataURI string
	BuyLamports uint64 // optional first buy; zero means no swap instruction
}

// Builder assembles unsigned transactions for the bonding-curve program.
// Returned transactions declare their required signers in the message header
// and carry empty signature slots.
type Builder interface {
	BuildConfigTransaction(ctx context.Context, p ConfigParams) (*solana.Transaction, error)
	BuildPoolTransaction(ctx context.Context, p PoolParams) (*solana.Transaction, error)
}

// ProgramBuilder implements Builder against the DBC program, fetching a
// recent blockhash per build.
type ProgramBuilder struct {
	rpc solana.RPCClient
}

// NewProgramBuilder creates a ProgramBuilder.
func NewProgramBuilder(rpc solana.RPCClient) *ProgramBuilder {
	return &ProgramBuilder{rpc: rpc}
}

// Compile-time interface check.
var _ Builder = (*ProgramBuilder)(nil)

// BuildConfigTransaction assembles the create_config transaction.
// Declared signers: payer wallet and the config account.
func (b *ProgramBuilder) BuildConfigTransaction(ctx context.Context, p ConfigParams) (*solana.Transaction, error) {
	if p.Payer.IsZero() || p.Config.IsZero() {
		return nil, fmt.Errorf("payer and config are required")
	}
	if p.Decimals > 9 {
		return nil, fmt.Errorf("decimals %d out of range [0,9]", p.Decimals)
	}
	quoteMint := p.QuoteMint
	if quoteMint.IsZero() {
		quoteMint = solana.WSOLMint
	}
	supply := p.InitialSupply
	if supply == 0 {
		supply = DefaultInitialSupply
	}

	blockhash, err := b.recentBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	ix := solana.Instruction{
		ProgramID: ProgramID,
		Accounts: []solana.AccountMeta{
			{Pubkey: p.Config, IsSigner: true, IsWritable: true},
			{Pubkey: p.Payer, IsSigner: true, IsWritable: true},
			{Pubkey: p.FeeClaimer, IsSigner: false, IsWritable: false},
			{Pubkey: quoteMint, IsSigner: false, IsWritable: false},
			{Pubkey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		},
		Data: createConfigData(p.Preset, supply, p.Decimals),
	}

	tx, err := solana.NewTransaction(p.Payer, blockhash, ix)
	if err != nil {
		return nil, fmt.Errorf("build config transaction: %w", err)
	}
	return tx, nil
}

// BuildPoolTransaction assembles the pool-creation transaction, appending a
// first-buy swap instruction only when BuyLamports > 0.
// Declared signers: payer wallet and the mint account.
func (b *ProgramBuilder) BuildPoolTransaction(ctx context.Context, p PoolParams) (*solana.Transaction, error) {
	if p.Payer.IsZero() || p.Config.IsZero() || p.Mint.IsZero() {
		return nil, fmt.Errorf("payer, config and mint are required")
	}
	if p.Name == "" || p.Symbol == "" || p.MetadataURI == "" {
		return nil, fmt.Errorf("token name, symbol and metadata URI are required")
	}

	pool, err := DerivePoolAddress(p.Config, p.Mint)
	if err != nil {
		return nil, fmt.Errorf("derive pool address: %w", err)
	}
	authority, err := derivePoolAuthority()
	if err != nil {
		return nil, fmt.Errorf("derive pool authority: %w", err)
	}
	curve, err := deriveCurveAddress(pool)
	if err != nil {
		return nil, fmt.Errorf("derive curve address: %w", err)
	}
	tokenMetadata, err := deriveMetadataAddress(p.Mint)
	if err != nil {
		return nil, fmt.Errorf("derive metadata address: %w", err)
	}
	payerATA, err := solana.FindAssociatedTokenAddress(p.Payer, p.Mint)
	if err != nil {
		return nil, err
	}

	blockhash, err := b.recentBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	instructions := []solana.Instruction{{
		ProgramID: ProgramID,
		Accounts: []solana.AccountMeta{
			{Pubkey: pool, IsSigner: false, IsWritable: true},
			{Pubkey: p.Config, IsSigner: false, IsWritable: false},
			{Pubkey: p.Mint, IsSigner: true, IsWritable: true},
			{Pubkey: authority, IsSigner: false, IsWritable: true},
			{Pubkey: curve, IsSigner: false, IsWritable: true},
			{Pubkey: tokenMetadata, IsSigner: false, IsWritable: true},
			{Pubkey: p.Payer, IsSigner: true, IsWritable: true},
			{Pubkey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
			{Pubkey: solana.AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
			{Pubkey: solana.MetadataProgramID, IsSigner: false, IsWritable: false},
			{Pubkey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		},
		Data: initializePoolData(p.Name, p.Symbol, p.MetadataURI),
	}}

	if p.BuyLamports > 0 {
		instructions = append(instructions, solana.Instruction{
			ProgramID: ProgramID,
			Accounts: []solana.AccountMeta{
				{Pubkey: pool, IsSigner: false, IsWritable: true},
				{Pubkey: curve, IsSigner: false, IsWritable: true},
				{Pubkey: payerATA, IsSigner: false, IsWritable: true},
				{Pubkey: p.Payer, IsSigner: true, IsWritable: true},
				{Pubkey: authority, IsSigner: false, IsWritable: false},
				{Pubkey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
			},
			Data: swapData(p.BuyLamports, 0),
		})
	}

	tx, err := solana.NewTransaction(p.Payer, blockhash, instructions...)
	if err != nil {
		return nil, fmt.Errorf("build pool transaction: %w", err)
	}
	return tx, nil
}

// recentBlockhash fetches and decodes the latest blockhash.
func (b *ProgramBuilder) recentBlockhash(ctx context.Context) ([32]byte, error) {
	bh, err := b.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return [32]byte{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	raw, err := bh.Bytes()
	if err != nil {
		return [32]byte{}, err
	}
	return raw, nil
}
