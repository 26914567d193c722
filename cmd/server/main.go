// Command server runs the Golf Cup API: the scoring and standings backend for a
// two-team handicap match-play cup.
//
// On startup it reads configuration, picks a store (PostgreSQL, or memory in
// development), loads the tee tables, then serves the JSON API under /api/v1, the
// live match feed under /ws and Prometheus metrics on /metrics until SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing so the scoring app can call the API
	// from a different origin (host/port)
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	// zap is the structured logger used everywhere outside the request log line
	"go.uber.org/zap"

	// Internal packages: our own code, imported by module path
	"github.com/trentd187/golf-cup/internal/cache"
	"github.com/trentd187/golf-cup/internal/config"
	"github.com/trentd187/golf-cup/internal/database"
	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/handlers"
	"github.com/trentd187/golf-cup/internal/logging"
	"github.com/trentd187/golf-cup/internal/middleware"
	"github.com/trentd187/golf-cup/internal/tournament"
	"github.com/trentd187/golf-cup/internal/websocket"
)

// shutdownTimeout bounds how long in-flight requests get to finish on SIGTERM.
const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// Build the structured logger and make it the global one, so packages that
	// have no logger injected (zap.L()) still write through it.
	logger, err := logging.New(cfg.Debug, cfg.Env)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// ctx is cancelled on SIGINT/SIGTERM; everything long-running watches it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tee tables: the built-in ones, or a TOML file when TEE_TABLES_PATH is set.
	tees := handicap.DefaultRegistry()
	if cfg.TeeTablesPath != "" {
		if tees, err = handicap.LoadTees(cfg.TeeTablesPath); err != nil {
			logger.Fatal("failed to load tee tables", zap.String("path", cfg.TeeTablesPath), zap.Error(err))
		}
	}
	logger.Info("tee tables loaded", zap.Strings("tees", tees.Keys()))

	store := openStore(cfg, logger)
	memo := openCache(ctx, cfg, logger)

	// Create the WebSocket Hub and start it in a goroutine.
	// The Hub manages every live connection: spectators following a match.
	// It stops and closes every client when ctx is cancelled.
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	svc := tournament.NewService(store, tees, cfg.Points(),
		tournament.WithCache(memo),
		tournament.WithLogger(logger),
		tournament.WithNotifier(hub),
	)

	// Create a new Fiber app (our HTTP server).
	// ErrorHandler turns every returned error into a {"error": "..."} body.
	app := fiber.New(fiber.Config{
		AppName:      "Golf Cup API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	app.Use(fiberlogger.New())
	// cors.New() allows requests from any origin.
	// In production, lock this down to your specific domain.
	app.Use(cors.New())
	// Request latency histogram, scraped from /metrics.
	app.Use(middleware.RequestMetrics())

	handlers.Routes(app, cfg, svc, hub)

	// Stop accepting connections once the signal arrives and let in-flight requests finish.
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080", listening on all network interfaces.
	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// openStore connects to PostgreSQL and applies pending migrations. In development
// with no DATABASE_URL the in-memory store is used instead, which is lost on restart.
func openStore(cfg *config.Config, log *zap.Logger) tournament.Store {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; using the in-memory store")
		return tournament.NewMemoryStore()
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	// Migrations are SQL scripts that create or alter tables. Running them on startup
	// keeps the schema in sync with the code.
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal("failed to run migrations", zap.String("source", cfg.MigrationsPath), zap.Error(err))
	}
	return database.NewStore(db)
}

// openCache picks the leaderboard memo: redis when REDIS_URL is set, otherwise an
// in-process map. An unreachable redis falls back to memory rather than blocking startup.
func openCache(ctx context.Context, cfg *config.Config, log *zap.Logger) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.NewMemory(cache.DefaultMemoryEntries)
	}
	r, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Warn("redis unavailable; memoizing in memory", zap.Error(err))
		return cache.NewMemory(cache.DefaultMemoryEntries)
	}
	go func() {
		<-ctx.Done()
		_ = r.Close()
	}()
	return r
}
