package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dbc-launchpad/internal/domain"
)

// marketplaceEntry is the JSON shape of one launched token.
type marketplaceEntry struct {
	Mint            string `json:"mint"`
	Pool            string `json:"pool"`
	Wallet          string `json:"wallet"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	MetadataURI     string `json:"metadataUri"`
	ImageURI        string `json:"imageUri"`
	DepositLamports uint64 `json:"depositLamports"`
	FeeLamports     uint64 `json:"feeLamports"`
	Locked          bool   `json:"locked"`
	LaunchedAt      int64  `json:"launchedAt"`
}

// marketplaceQuery is the optional `req` query parameter: a grouping spec.
type marketplaceQuery struct {
	GroupBy string `json:"groupBy,omitempty"` // "" or "wallet"
	Limit   int    `json:"limit,omitempty"`
	Order   string `json:"order,omitempty"` // "asc" or "desc" (default)
}

const (
	marketplaceDefaultLimit = 50
	marketplaceMaxLimit     = 500
)

// handleMarketplace lists launched tokens, newest first by default.
// An empty store yields {"entries": []} with 200, never an error.
func (s *Server) handleMarketplace(w http.ResponseWriter, r *http.Request) {
	query := marketplaceQuery{Limit: marketplaceDefaultLimit}
	if raw := r.URL.Query().Get("req"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &query); err != nil {
			writeError(w, http.StatusBadRequest, "invalid req parameter: "+err.Error())
			return
		}
	}
	if query.Limit <= 0 {
		query.Limit = marketplaceDefaultLimit
	}
	if query.Limit > marketplaceMaxLimit {
		query.Limit = marketplaceMaxLimit
	}
	switch query.Order {
	case "", "asc", "desc":
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid order %q", query.Order))
		return
	}
	switch query.GroupBy {
	case "", "wallet":
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid groupBy %q", query.GroupBy))
		return
	}

	launches, err := s.launches.ListByLaunchTime(r.Context(), query.Limit, 0, query.Order == "asc")
	if err != nil {
		s.writeDomainError(w, fmt.Errorf("list launches: %w", err))
		return
	}

	entries := make([]marketplaceEntry, 0, len(launches))
	for _, l := range launches {
		entries = append(entries, toMarketplaceEntry(l))
	}

	if query.GroupBy == "wallet" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groupByWallet(entries)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// walletGroup is one grouped marketplace bucket.
type walletGroup struct {
	Wallet  string             `json:"wallet"`
	Entries []marketplaceEntry `json:"entries"`
}

// groupByWallet buckets entries by creator wallet, preserving entry order.
func groupByWallet(entries []marketplaceEntry) []walletGroup {
	index := make(map[string]int)
	groups := make([]walletGroup, 0)
	for _, e := range entries {
		i, ok := index[e.Wallet]
		if !ok {
			i = len(groups)
			index[e.Wallet] = i
			groups = append(groups, walletGroup{Wallet: e.Wallet})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

func toMarketplaceEntry(l *domain.TokenLaunch) marketplaceEntry {
	return marketplaceEntry{
		Mint:            l.Mint,
		Pool:            l.Pool,
		Wallet:          l.Wallet,
		Name:            l.Name,
		Symbol:          l.Symbol,
		MetadataURI:     l.MetadataURI,
		ImageURI:        l.ImageURI,
		DepositLamports: l.DepositLamports,
		FeeLamports:     l.FeeLamports,
		Locked:          l.Locked,
		LaunchedAt:      l.LaunchedAt,
	}
}

// platformStatsResponse is the aggregated counter payload.
type platformStatsResponse struct {
	TotalLaunches        uint64 `json:"totalLaunches"`
	Launches24h          uint64 `json:"launches24h"`
	TotalDepositLamports uint64 `json:"totalDepositLamports"`
	TotalFeeLamports     uint64 `json:"totalFeeLamports"`
	LockedCount          uint64 `json:"lockedCount"`
}

// handlePlatformStats serves the aggregated counters. Aggregation failures
// degrade to zero stats rather than failing the dashboard.
func (s *Server) handlePlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Aggregate(r.Context())
	if err != nil {
		s.logger.Printf("aggregate platform stats: %v", err)
		stats = &domain.PlatformStats{}
	}

	writeJSON(w, http.StatusOK, platformStatsResponse{
		TotalLaunches:        stats.TotalLaunches,
		Launches24h:          stats.Launches24h,
		TotalDepositLamports: stats.TotalDepositLamports,
		TotalFeeLamports:     stats.TotalFeeLamports,
		LockedCount:          stats.LockedCount,
	})
}
