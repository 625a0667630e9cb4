// Package main initializes and runs the huginn link-checking service.
//
// It acts as the composition root: configuration, logging, cache backend
// selection, the observability server, and the check API, wired together
// and torn down gracefully.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rafaeljc/huginn/checkweb"
	"github.com/rafaeljc/huginn/internal/config"
	"github.com/rafaeljc/huginn/internal/logger"
	"github.com/rafaeljc/huginn/internal/observability"
	"github.com/rafaeljc/huginn/internal/validation"
	"github.com/rafaeljc/huginn/internal/webapi"
	"github.com/rafaeljc/huginn/linkcache"
)

// main is the application entrypoint.
func main() {
	if err := run(); err != nil {
		log.Printf("Fatal error: %v", err)
		os.Exit(1)
	}
}

// run executes the service lifecycle.
func run() error {
	// -------------------------------------------------------------------------
	// 1. Configuration & Logging
	// -------------------------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(&cfg.App)
	cfg.LogConfig(appLogger)

	ctx := logger.WithContext(context.Background(), appLogger)

	// -------------------------------------------------------------------------
	// 2. Cache Backend
	// -------------------------------------------------------------------------
	store, checkers, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// -------------------------------------------------------------------------
	// 3. Checker Environment
	// -------------------------------------------------------------------------
	validation.AssertNotEmpty(cfg.Checker.UserAgent, "checker user agent")
	headers := http.Header{}
	headers.Set("User-Agent", cfg.Checker.UserAgent)

	env := &checkweb.Environment{
		HTTPClient: cfg.HTTPClient.NewClient(),
		Headers:    headers,
		Store:      store,
		Timeout:    cfg.Checker.CacheTimeout,
	}

	// -------------------------------------------------------------------------
	// 4. Observability Server (metrics + probes)
	// -------------------------------------------------------------------------
	obsServer := observability.NewServer(appLogger, &cfg.Observability, checkers...)
	obsServer.Start()

	// -------------------------------------------------------------------------
	// 5. Check API Server
	// -------------------------------------------------------------------------
	api := webapi.NewAPI(env, appLogger)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	apiServer := &http.Server{
		Addr:         addr,
		Handler:      api,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("check API listening", "addr", addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("api server failed: %w", err)
		}
	}()

	// -------------------------------------------------------------------------
	// 6. Graceful Shutdown
	// -------------------------------------------------------------------------
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		appLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("api server shutdown failed", "error", err.Error())
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("observability server shutdown failed", "error", err.Error())
	}

	appLogger.Info("service exited")
	return nil
}

// buildStore constructs the configured cache backend, the readiness
// checkers that go with it, and a cleanup function for shutdown.
func buildStore(ctx context.Context, cfg *config.Config) (checkweb.CacheStore, []observability.Checker, func(), error) {
	noop := func() {}

	switch cfg.Checker.CacheBackend {
	case config.CacheBackendNone:
		// Every check performs a live probe.
		return nil, nil, noop, nil

	case config.CacheBackendMemory:
		return linkcache.NewMemory(), nil, noop, nil

	case config.CacheBackendOtter:
		store, err := linkcache.NewOtter(cfg.Checker.CacheCapacity, cfg.Checker.CacheRetention)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to build otter cache: %w", err)
		}
		return store, nil, store.Close, nil

	case config.CacheBackendRedis:
		client, err := linkcache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store := linkcache.NewRedis(client, cfg.Checker.CacheRetention)
		cleanup := func() { _ = store.Close() }
		return store, []observability.Checker{store}, cleanup, nil

	case config.CacheBackendPostgres:
		pool, err := linkcache.NewPostgresPool(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store, err := linkcache.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, noop, fmt.Errorf("failed to initialize postgres cache: %w", err)
		}
		return store, []observability.Checker{store}, pool.Close, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Checker.CacheBackend)
	}
}
