// Package main is the entry point for the Housekeeping Board server.
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

	"github.com/housekeeping-board/backend/internal/api"
	"github.com/housekeeping-board/backend/internal/config"
	"github.com/housekeeping-board/backend/internal/directory"
	"github.com/housekeeping-board/backend/internal/engine"
	"github.com/housekeeping-board/backend/internal/remote"
	"github.com/housekeeping-board/backend/internal/staff"
	"github.com/housekeeping-board/backend/internal/storage"
	"github.com/housekeeping-board/backend/internal/syncer"
	"github.com/housekeeping-board/backend/internal/timer"
	"github.com/housekeeping-board/backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to YAML configuration file")
	addr := flag.String("addr", "", "HTTP server address (overrides config)")
	dataDir := flag.String("data", "", "Data directory for SQLite database (overrides config)")
	staticDir := flag.String("static", "", "Directory for static frontend files (overrides config)")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *staticDir != "" {
		cfg.Server.StaticDir = *staticDir
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Server.Addr); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	// Allow overriding version via environment (e.g., injected by container build/runtime)
	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting Housekeeping Board (version: %s)...", version)

	// Initialize database
	dbPath := cfg.DataDir + "/housekeeping-board.db"
	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewEventBroadcaster(hub)

	// Initialize repositories
	roomRepo := storage.NewRoomRepository(db)
	timerRepo := storage.NewTimerRepository(db)
	stateRepo := storage.NewStateRepository(db)

	// Select the collaborator: spreadsheet API when configured, local
	// SQLite fallback otherwise.
	var collab remote.Collaborator
	if cfg.Remote.Enabled && cfg.Remote.BaseURL != "" {
		collab = remote.NewSheetsClient(remote.SheetsConfig{
			BaseURL: cfg.Remote.BaseURL,
			Token:   cfg.Remote.Token,
			Timeout: cfg.RemoteTimeout(),
		})
		log.Printf("Using spreadsheet collaborator at %s", cfg.Remote.BaseURL)
	} else {
		collab = remote.NewLocalStore(roomRepo)
		log.Println("Using local room store (no remote configured)")
	}

	// Initialize core services
	dir := directory.New()
	controller := syncer.New(dir, collab, broadcaster, cfg.FetchTimeout())
	eng := engine.New(dir, collab, broadcaster, controller)
	tracker := timer.NewTracker(timerRepo)
	registry := staff.NewRegistry(collab, stateRepo, broadcaster)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := tracker.Restore(startupCtx); err != nil {
		log.Printf("Warning: Failed to restore room timers: %v", err)
	}
	if err := registry.Restore(startupCtx); err != nil {
		log.Printf("Warning: Failed to restore break state: %v", err)
	}
	startupCancel()

	// Initial room load and periodic refresh
	controller.InitialLoad()
	scheduler := syncer.NewScheduler(controller, cfg.Sync.AutoRefreshMinutes)
	if err := scheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start refresh scheduler: %v", err)
	}

	// Initialize HTTP router with services
	router := api.NewRouter(db, hub, broadcaster, cfg.Server.StaticDir,
		dir, eng, tracker, registry, controller, scheduler, collab)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the refresh scheduler
	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
