// Package api exposes the launchpad HTTP endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"dbc-launchpad/internal/dbc"
	"dbc-launchpad/internal/metadata"
	"dbc-launchpad/internal/observability"
	"dbc-launchpad/internal/signing"
	"dbc-launchpad/internal/solana"
	"dbc-launchpad/internal/storage"
)

// Options holds the injected dependencies for a Server. Everything is
// constructed once at startup; handlers hold no process-wide singletons.
type Options struct {
	Keys        storage.SigningKeyStore
	Configs     storage.PoolConfigStore
	Launches    storage.TokenLaunchStore
	Stats       storage.LaunchStatsStore
	Publisher   metadata.Publisher
	Builder     dbc.Builder
	Coordinator *signing.Coordinator
	Confirmer   *solana.ConfirmationService
	Treasury    solana.Pubkey // fee claimer for new configs
	Logger      *log.Logger
}

// Server is the HTTP front of the launchpad.
type Server struct {
	keys        storage.SigningKeyStore
	configs     storage.PoolConfigStore
	launches    storage.TokenLaunchStore
	stats       storage.LaunchStatsStore
	publisher   metadata.Publisher
	builder     dbc.Builder
	coordinator *signing.Coordinator
	confirmer   *solana.ConfirmationService
	treasury    solana.Pubkey
	logger      *log.Logger
}

// NewServer creates a Server from its dependencies.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		keys:        opts.Keys,
		configs:     opts.Configs,
		launches:    opts.Launches,
		stats:       opts.Stats,
		publisher:   opts.Publisher,
		builder:     opts.Builder,
		coordinator: opts.Coordinator,
		confirmer:   opts.Confirmer,
		treasury:    opts.Treasury,
		logger:      logger,
	}
}

// Routes builds the request mux with CORS and metrics middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/create-pool", s.instrument("create-pool", requirePost(s.handleCreatePool)))
	mux.HandleFunc("/create-token", s.instrument("create-token", requirePost(s.handleCreateToken)))
	mux.HandleFunc("/sign-token-txs", s.instrument("sign-token-txs", requirePost(s.handleSignTokenTxs)))
	mux.HandleFunc("/record-launch", s.instrument("record-launch", requirePost(s.handleRecordLaunch)))
	mux.HandleFunc("/pool-configs", s.instrument("pool-configs", s.handlePoolConfigs))
	mux.HandleFunc("/recent-pool-configs", s.instrument("recent-pool-configs", s.handleRecentPoolConfigs))
	mux.HandleFunc("/marketplace", s.instrument("marketplace", s.handleMarketplace))
	mux.HandleFunc("/platform-stats", s.instrument("platform-stats", s.handlePlatformStats))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())

	return withCORS(mux)
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes a success body.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are out; nothing left to do but note it.
		log.Printf("encode response: %v", err)
	}
}

// writeError emits the error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps a handler failure onto the error taxonomy:
// validation and transaction-decode failures are 400, keypair misses 404,
// everything upstream 500 with the upstream message attached.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, signing.ErrMissingFields),
		errors.Is(err, solana.ErrInvalidTransaction),
		errors.Is(err, storage.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, signing.ErrKeypairNotFound),
		errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrDuplicateKey):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
