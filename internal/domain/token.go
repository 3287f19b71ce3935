package domain

// TokenDescriptor describes the token a creation request wants to launch.
// Supplied by the client; the metadata publisher turns it into an on-chain
// metadata URI.
type TokenDescriptor struct {
	Name        string  // display name
	Ticker      string  // symbol, e.g. "BONK"
	Description string  // free-form description
	ImageURL    string  // source image to pin
	Website     *string // optional project link (nullable)
	Twitter     *string // optional twitter link (nullable)
	Telegram    *string // optional telegram link (nullable)
}

// PoolConfig is a bonding-curve config account created through this service.
// Corresponds to pool_configs table in PostgreSQL.
type PoolConfig struct {
	Key        string // config account public key, PRIMARY KEY
	Wallet     string // creator wallet address
	FeeClaimer string // treasury address receiving trading fees
	QuoteMint  string // quote token mint (typically WSOL)
	Preset     string // curve preset id the config was built from
	CreatedAt  int64  // record creation timestamp (ms)
}
