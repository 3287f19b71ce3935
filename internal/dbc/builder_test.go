package dbc

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"dbc-launchpad/internal/solana"
	"dbc-launchpad/internal/solana/stub"
)

func mustKeypair(t *testing.T) *solana.Keypair {
	t.Helper()
	kp, err := solana.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	return kp
}

func TestBuildConfigTransaction_DeclaredSigners(t *testing.T) {
	builder := NewProgramBuilder(stub.NewRPCClient())

	payer := mustKeypair(t)
	config := mustKeypair(t)
	treasury := mustKeypair(t)

	tx, err := builder.BuildConfigTransaction(context.Background(), ConfigParams{
		Payer:      payer.Pubkey,
		Config:     config.Pubkey,
		FeeClaimer: treasury.Pubkey,
		Preset:     DefaultPreset(),
	})
	if err != nil {
		t.Fatalf("BuildConfigTransaction: %v", err)
	}

	if n := tx.Message.Header.NumRequiredSignatures; n != 2 {
		t.Fatalf("required signatures: got %d, want 2", n)
	}
	if tx.Message.AccountKeys[0] != payer.Pubkey {
		t.Error("payer must be the first account key")
	}
	if tx.Message.AccountKeys[1] != config.Pubkey {
		t.Error("config must be the second signer")
	}

	missing := tx.MissingSigners()
	if len(missing) != 2 {
		t.Fatalf("expected 2 empty slots, got %d", len(missing))
	}
}

func TestBuildPoolTransaction_DeclaredSigners(t *testing.T) {
	builder := NewProgramBuilder(stub.NewRPCClient())

	payer := mustKeypair(t)
	config := mustKeypair(t)
	mint := mustKeypair(t)

	tx, err := builder.BuildPoolTransaction(context.Background(), PoolParams{
		Payer:       payer.Pubkey,
		Config:      config.Pubkey,
		Mint:        mint.Pubkey,
		Name:        "Test Token",
		Symbol:      "TEST",
		MetadataURI: "https://gateway.test/ipfs/QmMeta",
	})
	if err != nil {
		t.Fatalf("BuildPoolTransaction: %v", err)
	}

	if n := tx.Message.Header.NumRequiredSignatures; n != 2 {
		t.Fatalf("required signatures: got %d, want 2", n)
	}
	if tx.Message.AccountKeys[0] != payer.Pubkey {
		t.Error("payer must be the first account key")
	}
	if tx.Message.AccountKeys[1] != mint.Pubkey {
		t.Error("mint must be the second signer")
	}
}

func TestBuildPoolTransaction_SwapOnlyWithBuyAmount(t *testing.T) {
	builder := NewProgramBuilder(stub.NewRPCClient())

	payer := mustKeypair(t)
	config := mustKeypair(t)
	mint := mustKeypair(t)

	params := PoolParams{
		Payer:       payer.Pubkey,
		Config:      config.Pubkey,
		Mint:        mint.Pubkey,
		Name:        "Test Token",
		Symbol:      "TEST",
		MetadataURI: "https://gateway.test/ipfs/QmMeta",
	}

	noBuy, err := builder.BuildPoolTransaction(context.Background(), params)
	if err != nil {
		t.Fatalf("BuildPoolTransaction (no buy): %v", err)
	}
	if len(noBuy.Message.Instructions) != 1 {
		t.Fatalf("buyAmount=0: got %d instructions, want 1", len(noBuy.Message.Instructions))
	}

	params.BuyLamports = 500_000_000
	withBuy, err := builder.BuildPoolTransaction(context.Background(), params)
	if err != nil {
		t.Fatalf("BuildPoolTransaction (with buy): %v", err)
	}
	if len(withBuy.Message.Instructions) != 2 {
		t.Fatalf("buyAmount>0: got %d instructions, want 2", len(withBuy.Message.Instructions))
	}

	swapIx := withBuy.Message.Instructions[1]
	if !bytes.Equal(swapIx.Data[:8], anchorDiscriminator("swap")) {
		t.Error("second instruction is not a swap")
	}
}

func TestBuildPoolTransaction_PoolDerivationDeterministic(t *testing.T) {
	config := mustKeypair(t)
	mint := mustKeypair(t)

	pool1, err := DerivePoolAddress(config.Pubkey, mint.Pubkey)
	if err != nil {
		t.Fatalf("DerivePoolAddress: %v", err)
	}
	pool2, err := DerivePoolAddress(config.Pubkey, mint.Pubkey)
	if err != nil {
		t.Fatalf("DerivePoolAddress: %v", err)
	}
	if pool1 != pool2 {
		t.Error("pool derivation must be deterministic")
	}

	otherMint := mustKeypair(t)
	pool3, err := DerivePoolAddress(config.Pubkey, otherMint.Pubkey)
	if err != nil {
		t.Fatalf("DerivePoolAddress: %v", err)
	}
	if pool1 == pool3 {
		t.Error("different mints must derive different pools")
	}
}

func TestBuildConfigTransaction_RPCFailure(t *testing.T) {
	rpc := stub.NewRPCClient()
	rpc.Fail = true
	builder := NewProgramBuilder(rpc)

	payer := mustKeypair(t)
	config := mustKeypair(t)

	_, err := builder.BuildConfigTransaction(context.Background(), ConfigParams{
		Payer:  payer.Pubkey,
		Config: config.Pubkey,
		Preset: DefaultPreset(),
	})
	if err == nil {
		t.Fatal("expected error when RPC is unavailable")
	}
}

func TestBuildConfigTransaction_TokenParams(t *testing.T) {
	builder := NewProgramBuilder(stub.NewRPCClient())

	payer := mustKeypair(t)
	config := mustKeypair(t)

	params := ConfigParams{
		Payer:         payer.Pubkey,
		Config:        config.Pubkey,
		Preset:        DefaultPreset(),
		Decimals:      4,
		InitialSupply: 42_000,
	}

	tx, err := builder.BuildConfigTransaction(context.Background(), params)
	if err != nil {
		t.Fatalf("BuildConfigTransaction: %v", err)
	}

	data := tx.Message.Instructions[0].Data
	want := createConfigData(DefaultPreset(), 42_000, 4)
	if !bytes.Equal(data, want) {
		t.Error("instruction payload does not carry the requested supply and decimals")
	}

	supply := binary.LittleEndian.Uint64(data[len(data)-9 : len(data)-1])
	if supply != 42_000 {
		t.Errorf("encoded supply = %d, want 42000", supply)
	}
	if decimals := data[len(data)-1]; decimals != 4 {
		t.Errorf("encoded decimals = %d, want 4", decimals)
	}

	params.Decimals = 9
	other, err := builder.BuildConfigTransaction(context.Background(), params)
	if err != nil {
		t.Fatalf("BuildConfigTransaction: %v", err)
	}
	if bytes.Equal(other.Message.Instructions[0].Data, data) {
		t.Error("changing decimals must change the config payload")
	}

	params.Decimals = 10
	if _, err := builder.BuildConfigTransaction(context.Background(), params); err == nil {
		t.Error("expected error for decimals out of range")
	}
}

func TestBuildConfigTransaction_SupplyDefault(t *testing.T) {
	builder := NewProgramBuilder(stub.NewRPCClient())

	payer := mustKeypair(t)
	config := mustKeypair(t)

	tx, err := builder.BuildConfigTransaction(context.Background(), ConfigParams{
		Payer:  payer.Pubkey,
		Config: config.Pubkey,
		Preset: DefaultPreset(),
	})
	if err != nil {
		t.Fatalf("BuildConfigTransaction: %v", err)
	}

	data := tx.Message.Instructions[0].Data
	supply := binary.LittleEndian.Uint64(data[len(data)-9 : len(data)-1])
	if supply != DefaultInitialSupply {
		t.Errorf("encoded supply = %d, want default %d", supply, DefaultInitialSupply)
	}
}

func TestPresetLookups(t *testing.T) {
	p, err := PresetByID("standard")
	if err != nil {
		t.Fatalf("PresetByID: %v", err)
	}
	if p.LockedVesting {
		t.Error("standard preset should not lock vesting")
	}

	if _, err := PresetByID("unknown"); err == nil {
		t.Error("expected error for unknown preset id")
	}

	if got := DefaultPreset().ID; got != "standard" {
		t.Errorf("default preset = %q, want standard", got)
	}
}
