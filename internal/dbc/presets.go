package dbc

import "fmt"

// Preset is a named bonding-curve configuration template. Deposit and fee
// figures for a launch derive from the preset the config account was built
// with; the curve pricing math itself lives in the on-chain program.
type Preset struct {
	ID                 string
	MigrationThreshold uint64 // quote lamports collected before migration
	TradeFeeBps        uint16 // trading fee in basis points
	CreatorFeeBps      uint16 // creator share of the trading fee
	DepositLamports    uint64 // creator deposit taken at launch
	FeeLamports        uint64 // flat platform fee taken at launch
	LockedVesting      bool   // liquidity locked after migration
}

// Curve presets, ordered from cheapest to most capitalized. Creation
// requests select a preset by id; requests naming none get the first.
var presets = []Preset{
	{
		ID:                 "standard",
		MigrationThreshold: 85_000_000_000, // 85 SOL
		TradeFeeBps:        100,
		CreatorFeeBps:      50,
		DepositLamports:    0,
		FeeLamports:        20_000_000,
		LockedVesting:      false,
	},
	{
		ID:                 "locked",
		MigrationThreshold: 85_000_000_000,
		TradeFeeBps:        100,
		CreatorFeeBps:      50,
		DepositLamports:    1_000_000_000, // 1 SOL
		FeeLamports:        20_000_000,
		LockedVesting:      true,
	},
	{
		ID:                 "highcap",
		MigrationThreshold: 420_000_000_000, // 420 SOL
		TradeFeeBps:        200,
		CreatorFeeBps:      100,
		DepositLamports:    2_000_000_000,
		FeeLamports:        50_000_000,
		LockedVesting:      true,
	},
}

// PresetByID looks up a preset by name.
func PresetByID(id string) (Preset, error) {
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown curve preset %q", id)
}

// DefaultPreset is the preset used when a creation request names none.
func DefaultPreset() Preset {
	return presets[0]
}
