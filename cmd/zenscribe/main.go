// Package main is the entry point for the ZenScribe server.
// It loads configuration, opens the persistent store, wires the
// generation client and application controller, and starts the HTTP
// server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zenscribe/internal/ai"
	"zenscribe/internal/app"
	"zenscribe/internal/config"
	"zenscribe/internal/handlers"
	"zenscribe/internal/history"
	"zenscribe/internal/kvstore"
	"zenscribe/internal/publisher"
	"zenscribe/internal/router"
	"zenscribe/internal/session"
)

func main() {
	// Structured logger — text output, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from .env and environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"storage", cfg.StorageBackend,
	)

	// Open the persistent key-value store.
	kv, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	if closer, ok := kv.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// Initialize the AI provider registry with all configured providers.
	registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"gemini": {APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
		"openai": {APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
	})
	if len(registry.Available()) == 0 {
		slog.Warn("no AI provider has an API key — generation will fail until one is configured")
	}
	slog.Info("ai providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	// Load persisted state and build the application controller. The
	// blocking yes/no confirmations run in the browser; requests reach
	// the controller already confirmed (the handlers enforce the flag).
	ctx := context.Background()
	ctrl := app.New(ctx,
		ai.NewGenerator(registry),
		history.New(ctx, kv),
		session.New(ctx, kv),
		publisher.New(),
		kv,
		func(string) bool { return true },
	)

	api := handlers.New(ctrl, cfg.Defaults)
	r := router.New(api)

	// WriteTimeout must accommodate the generation endpoint, which
	// waits on the external LLM call (typically 10-30s).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openStore selects the storage backend from configuration.
func openStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.StorageBackend {
	case "valkey":
		return kvstore.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return kvstore.NewFile(cfg.DataDir)
	}
}
