/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the procurement engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse environment config
  2. Parse command-line flags (flags override environment)
  3. Initialize logger and SQLite store
  4. Apply engine tuning file if configured
  5. Optionally seed demo data
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default from PROCURE_HTTP_PORT, 8080)
  -db      SQLite database path (default from PROCURE_DB_PATH)
  -seed    Load demo fixtures on startup
  -tuning  Path to a JSON engine tuning file (rules, weights, bands)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with demo data
  ./server -db="./data/procurement.db" -seed

  # Run on different port with custom tuning
  ./server -port=3000 -tuning=./tuning.json

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - pkg/config/config.go: Environment variables
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/procure-engine/api"
	"github.com/warp/procure-engine/engine"
	"github.com/warp/procure-engine/factory"
	"github.com/warp/procure-engine/pkg/config"
	"github.com/warp/procure-engine/pkg/logger"
	"github.com/warp/procure-engine/store/sqlite"
)

func main() {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override environment
	port := flag.String("port", cfg.HTTP.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DB.Path, "SQLite database path")
	seed := flag.Bool("seed", cfg.Engine.Seed, "load demo fixtures on startup")
	tuningPath := flag.String("tuning", cfg.Engine.TuningPath, "path to JSON engine tuning file")
	flag.Parse()

	log := logger.New(logger.Options{
		ServiceName: "procure-engine",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Console:     cfg.App.IsDev(),
	})
	ctx := context.Background()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal(ctx, "failed to initialize database", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, log)

	// Apply engine tuning if configured
	if *tuningPath != "" {
		raw, err := os.ReadFile(*tuningPath)
		if err != nil {
			log.Fatal(ctx, "failed to read tuning file", err)
		}
		engineCfg, err := factory.NewConfigFactory().ParseConfig(string(raw))
		if err != nil {
			log.Fatal(ctx, "failed to parse tuning file", err)
		}
		handler.Engine = engine.NewWithConfig(store, *engineCfg)
		log.Info(log.WithField(ctx, "tuning", *tuningPath), "engine tuning applied")
	}

	// Seed demo data
	if *seed {
		if err := api.Seed(ctx, store); err != nil {
			log.Fatal(ctx, "failed to seed demo data", err)
		}
		log.Info(ctx, "demo data seeded")
	}

	// Create router and server
	router := api.NewRouter(handler, cfg.HTTP.Origins())
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info(log.WithField(ctx, "addr", server.Addr), "server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(ctx, "server failed", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(ctx, "server forced to shutdown", err)
	}

	log.Info(ctx, "server stopped")
}
