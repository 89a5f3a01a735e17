/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the roster engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and YAML configuration, parse command-line flags
  2. Initialize SQLite repository (migrations run automatically)
  3. Create scheduling service and API handler
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to YAML config file (optional)
  -listen  Listen address, overrides config (e.g. ":8080")
  -db      SQLite database path, overrides config
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/roster.db"

  # Run with a config file
  ./server -config=roster.yaml

  # Run on a different port
  ./server -listen=:3000

ENVIRONMENT:
  ROSTER_LISTEN, ROSTER_DB_PATH, ROSTER_ALLOWED_ORIGINS override the
  config file. A .env file in the working directory is loaded first.

SEE ALSO:
  - config/config.go: Configuration loading
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inservice/roster-engine/api"
	"github.com/inservice/roster-engine/config"
	"github.com/inservice/roster-engine/scheduling"
	"github.com/inservice/roster-engine/store/sqlite"
	"github.com/inservice/roster-engine/suggest"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	// Flags
	configPath := flag.String("config", "", "path to YAML config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	cfg.Normalize()

	// Initialize repository
	repo, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repo.Close()

	// Wire service and handler
	svc := scheduling.New(repo)
	handler := api.NewHandler(svc, suggest.Rotation{})

	// Backfill policies for schedules that predate service-day config
	if updated, err := svc.BackfillServiceDayConfig(context.Background()); err != nil {
		log.Printf("Warning: config backfill failed: %v", err)
	} else if updated > 0 {
		log.Printf("Backfilled service-day config for %d schedule(s)", updated)
	}

	// Create router
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	// Create server
	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
