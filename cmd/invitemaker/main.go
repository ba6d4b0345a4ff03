// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the invitation maker API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invitemaker/internal/auth"
	"invitemaker/internal/cache"
	"invitemaker/internal/config"
	"invitemaker/internal/database"
	"invitemaker/internal/handlers"
	"invitemaker/internal/middleware"
	"invitemaker/internal/router"
	"invitemaker/internal/storage"
	"invitemaker/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
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

	// Seed the template catalogue (no-op if templates already exist).
	seeded, err := database.SeedTemplates(context.Background(), db)
	if err != nil {
		slog.Error("failed to seed templates", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		slog.Info("seeded templates", "count", seeded)
	}

	for _, dir := range []string{cfg.UploadDir, cfg.TemplateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("failed to create asset directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the template catalogue cache (optional).
	var templateCache handlers.TemplateCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		tc := cache.NewTemplateCache(valkeyClient, cache.DefaultTemplateTTL)
		if seeded > 0 {
			tc.Invalidate(context.Background())
		}
		templateCache = tc
		slog.Info("valkey cache connected", "host", cfg.ValkeyHost)
	} else {
		slog.Warn("valkey not configured, template cache disabled")
	}

	// Uploads go to S3-compatible object storage when configured, otherwise
	// to the local upload directory.
	var backend storage.Backend = storage.NewLocal(cfg.UploadDir)
	if cfg.S3Enabled() {
		s3Backend, err := storage.NewS3(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if s3Backend != nil {
			backend = s3Backend
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3BucketPublic,
			)
		}
	} else {
		slog.Info("s3 storage not configured, uploads stored locally", "dir", cfg.UploadDir)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	templateStore := store.NewTemplateStore(db)
	designStore := store.NewDesignStore(db)
	guestStore := store.NewGuestStore(db)
	responseStore := store.NewResponseStore(db)
	analyticsStore := store.NewAnalyticsStore(db)

	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenExpiry)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()
	limiter.TrustProxies(cfg.TrustedProxies...)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Tokens:      tokens,
		RateLimiter: limiter,
		Metrics:     middleware.NewMetrics(),
		CORSOrigins: cfg.CORSOrigins,

		Auth:      handlers.NewAuth(userStore, tokens),
		Public:    handlers.NewPublic(templateStore, templateCache, cfg.UploadDir, cfg.TemplateDir),
		Uploads:   handlers.NewUploads(backend),
		Designs:   handlers.NewDesigns(designStore, cfg.PublicBaseURL),
		Guests:    handlers.NewGuests(designStore, guestStore),
		RSVP:      handlers.NewRSVP(designStore, responseStore),
		Analytics: handlers.NewAnalytics(analyticsStore),
	})

	// Create the HTTP server with sensible timeouts. Reads allow for large
	// canvas documents and photo uploads.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
