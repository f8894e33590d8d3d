// Package main is the entry point for the Vidriera El Paisa content server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vidriera/internal/cache"
	"vidriera/internal/config"
	"vidriera/internal/database"
	"vidriera/internal/handlers"
	"vidriera/internal/media"
	"vidriera/internal/middleware"
	"vidriera/internal/router"
	"vidriera/internal/session"
	"vidriera/internal/storage"
	"vidriera/internal/store"
)

func main() {
	// A local .env is a development convenience; in production everything
	// comes from the real environment.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger — JSON in production, text in development.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"review_limit", cfg.ReviewLimit,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions and reset tokens).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	resetTokens := session.NewResetTokens(valkeyClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	publicationStore := store.NewPublicationStore(db)
	bannerStore := store.NewBannerStore(db)
	reviewStore := store.NewReviewStore(db)

	// Connect to S3-compatible object storage (optional — the app works
	// without it, falling back to manually pasted image URLs).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — image uploads disabled, manual URLs still work")
	}

	var uploader media.Uploader
	if storageClient != nil {
		uploader = storageClient
	}
	ingestor := media.NewIngestor(uploader)

	// Rate limiters for the abuse-prone public endpoints.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()
	writeLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer writeLimiter.Stop()

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(sessionStore, userStore, resetTokens)
	publicHandlers := handlers.NewPublic(publicationStore, bannerStore, reviewStore, cfg.ReviewLimit)
	adminHandlers := handlers.NewAdmin(publicationStore, bannerStore, reviewStore, ingestor, storageClient)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Sessions:     sessionStore,
		Users:        userStore,
		Auth:         authHandlers,
		Public:       publicHandlers,
		Admin:        adminHandlers,
		LoginLimiter: loginLimiter,
		WriteLimiter: writeLimiter,
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// image uploads to object storage on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
