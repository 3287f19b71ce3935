package dbc

import (
	"crypto/sha256"
	"encoding/binary"

	"dbc-launchpad/internal/solana"
)

// ProgramID is the Meteora Dynamic Bonding Curve program.
var ProgramID = solana.MustParsePubkey("dbcij3LWUppWqq96dh6gJWwBifmcGfLSB5D4DuSMaqN")

// PDA seed prefixes used by the program.
var (
	seedPool      = []byte("pool")
	seedCurve     = []byte("curve")
	seedMetadata  = []byte("metadata")
	seedAuthority = []byte("pool_authority")
)

// anchorDiscriminator computes the 8-byte instruction tag for a global
// instruction name, sha256("global:" + name)[:8].
func anchorDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:8]
}

// appendU64 appends a little-endian u64 to an instruction payload.
func appendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

// appendU16 appends a little-endian u16 to an instruction payload.
func appendU16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

// appendBool appends a borsh bool.
func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

// appendString appends a borsh string (u32 length prefix + bytes).
func appendString(b []byte, s string) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

// createConfigData encodes the create_config instruction payload: the curve
// economics from the preset plus the token supply and decimals the mint will
// be initialized with.
func createConfigData(p Preset, initialSupply uint64, decimals uint8) []byte {
	data := anchorDiscriminator("create_config")
	data = appendU64(data, p.MigrationThreshold)
	data = appendU16(data, p.TradeFeeBps)
	data = appendU16(data, p.CreatorFeeBps)
	data = appendBool(data, p.LockedVesting)
	data = appendU64(data, initialSupply)
	data = append(data, decimals)
	return data
}

// initializePoolData encodes the initialize_virtual_pool_with_spl_token
// payload: the token identity the pool mints under.
func initializePoolData(name, symbol, uri string) []byte {
	data := anchorDiscriminator("initialize_virtual_pool_with_spl_token")
	data = appendString(data, name)
	data = appendString(data, symbol)
	data = appendString(data, uri)
	return data
}

// swapData encodes the swap payload for the optional first buy.
func swapData(amountIn, minAmountOut uint64) []byte {
	data := anchorDiscriminator("swap")
	data = appendU64(data, amountIn)
	data = appendU64(data, minAmountOut)
	return data
}

// DerivePoolAddress derives the virtual pool PDA for a config and base mint.
func DerivePoolAddress(config, baseMint solana.Pubkey) (solana.Pubkey, error) {
	pool, _, err := solana.FindProgramAddress(
		[][]byte{seedPool, config[:], baseMint[:]},
		ProgramID,
	)
	return pool, err
}

// derivePoolAuthority derives the program's pool authority PDA.
func derivePoolAuthority() (solana.Pubkey, error) {
	authority, _, err := solana.FindProgramAddress(
		[][]byte{seedAuthority},
		ProgramID,
	)
	return authority, err
}

// deriveCurveAddress derives the bonding-curve state PDA for a pool.
func deriveCurveAddress(pool solana.Pubkey) (solana.Pubkey, error) {
	curve, _, err := solana.FindProgramAddress(
		[][]byte{seedCurve, pool[:]},
		ProgramID,
	)
	return curve, err
}

// deriveMetadataAddress derives the Metaplex metadata PDA for a mint.
func deriveMetadataAddress(mint solana.Pubkey) (solana.Pubkey, error) {
	meta, _, err := solana.FindProgramAddress(
		[][]byte{seedMetadata, solana.MetadataProgramID[:], mint[:]},
		solana.MetadataProgramID,
	)
	return meta, err
}
