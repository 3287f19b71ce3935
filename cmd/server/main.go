// Package main runs the token launchpad service: keypair custody, metadata
// publishing, transaction building, co-signing and launch recording behind
// a single HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dbc-launchpad/internal/api"
	"dbc-launchpad/internal/dbc"
	"dbc-launchpad/internal/metadata"
	"dbc-launchpad/internal/signing"
	"dbc-launchpad/internal/solana"
	"dbc-launchpad/internal/storage"
	chstore "dbc-launchpad/internal/storage/clickhouse"
	"dbc-launchpad/internal/storage/memory"
	"dbc-launchpad/internal/storage/migrations"
	pgstore "dbc-launchpad/internal/storage/postgres"
)

const defaultPinataGateway = "https://gateway.pinata.cloud"

// allStores holds all storage implementations.
type allStores struct {
	keys     storage.SigningKeyStore
	configs  storage.PoolConfigStore
	launches storage.TokenLaunchStore
	stats    storage.LaunchStatsStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("SERVER_ADDR", ":8080"), "HTTP listen address")
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("SOLANA_WS_ENDPOINT"), "Solana WebSocket endpoint (optional, enables blocking confirmation waits)")
	pinataJWT := flag.String("pinata-jwt", os.Getenv("PINATA_JWT"), "Pinata API JWT")
	pinataGateway := flag.String("pinata-gateway", envOr("PINATA_GATEWAY", defaultPinataGateway), "IPFS gateway base URL")
	treasuryKey := flag.String("treasury-key", os.Getenv("TREASURY_SECRET_KEY"), "Treasury secret key (base58)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags before touching any backend
	if *rpcEndpoint == "" {
		logger.Fatal("--rpc-endpoint is required")
	}
	if *pinataJWT == "" {
		logger.Fatal("--pinata-jwt is required")
	}
	if *treasuryKey == "" {
		logger.Fatal("--treasury-key is required")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	treasury, err := solana.KeypairFromBase58(*treasuryKey)
	if err != nil {
		logger.Fatalf("Invalid treasury key: %v", err)
	}
	logger.Printf("Treasury authority: %s", treasury.Pubkey)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// RPC client; WebSocket is optional and only used for confirmation waits
	rpc := solana.NewHTTPClient(*rpcEndpoint)

	// The treasury pays nothing itself, but an empty account at startup
	// usually means the wrong key was configured.
	balanceCtx, balanceCancel := context.WithTimeout(ctx, 10*time.Second)
	if balance, err := rpc.GetBalance(balanceCtx, treasury.Pubkey.String()); err != nil {
		logger.Printf("Could not fetch treasury balance: %v", err)
	} else {
		logger.Printf("Treasury balance: %d lamports", balance)
		if balance == 0 {
			logger.Println("WARNING: treasury account has zero balance")
		}
	}
	balanceCancel()

	var ws solana.WSClient
	if *wsEndpoint != "" {
		wsClient, err := solana.NewWSClient(ctx, *wsEndpoint, nil)
		if err != nil {
			logger.Fatalf("Failed to connect WebSocket: %v", err)
		}
		defer wsClient.Close()
		ws = wsClient
	} else {
		logger.Println("No WebSocket endpoint configured, confirmations use RPC polling only")
	}

	publisher := metadata.NewPinataPublisher(*pinataJWT, *pinataGateway,
		metadata.WithLogger(log.New(os.Stdout, "[pinata] ", log.LstdFlags|log.Lshortfile)))

	coordinator := signing.NewCoordinator(stores.keys,
		signing.WithTreasury(treasury),
		signing.WithLogger(log.New(os.Stdout, "[signing] ", log.LstdFlags|log.Lshortfile)))

	server := api.NewServer(api.Options{
		Keys:        stores.keys,
		Configs:     stores.configs,
		Launches:    stores.launches,
		Stats:       stores.stats,
		Publisher:   publisher,
		Builder:     dbc.NewProgramBuilder(rpc),
		Coordinator: coordinator,
		Confirmer:   solana.NewConfirmationService(rpc, ws),
		Treasury:    treasury.Pubkey,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("Listening on %s", *addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Graceful shutdown failed: %v", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}

	cancel()
	logger.Println("Shutdown complete")
}

// createStores creates all required stores, running migrations for the
// database-backed implementations.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			keys:     memory.NewSigningKeyStore(),
			configs:  memory.NewPoolConfigStore(),
			launches: memory.NewTokenLaunchStore(),
			stats:    memory.NewLaunchStatsStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	// ClickHouse
	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}

	stores := &allStores{
		keys:     pgstore.NewSigningKeyStore(pool),
		configs:  pgstore.NewPoolConfigStore(pool),
		launches: pgstore.NewTokenLaunchStore(pool),
		stats:    chstore.NewLaunchStatsStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// envOr returns the environment variable value, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
