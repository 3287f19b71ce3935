package domain

// TokenLaunch is the creation record for a launched token, written once
// after the client reports confirmed on-chain submission.
// Corresponds to token_launches table in PostgreSQL.
type TokenLaunch struct {
	Mint            string // token mint address, PRIMARY KEY
	Pool            string // bonding-curve pool address
	ConfigKey       string // config account the pool was created under
	Wallet          string // creator wallet address
	Name            string // token name
	Symbol          string // token symbol
	MetadataURI     string // pinned metadata document URI
	ImageURI        string // pinned image URI
	DepositLamports uint64 // creator deposit
	FeeLamports     uint64 // platform fee taken at launch
	Locked          bool   // liquidity-lock flag
	LaunchedAt      int64  // confirmed launch timestamp (ms)
}

// LaunchEvent is the analytics row recorded per confirmed launch.
// Corresponds to launch_events table in ClickHouse.
type LaunchEvent struct {
	Mint            string
	Wallet          string
	DepositLamports uint64
	FeeLamports     uint64
	Locked          bool
	LaunchedAt      int64 // ms
}

// PlatformStats holds the aggregated counters served by the stats endpoint.
type PlatformStats struct {
	TotalLaunches        uint64
	Launches24h          uint64
	TotalDepositLamports uint64
	TotalFeeLamports     uint64
	LockedCount          uint64
}
