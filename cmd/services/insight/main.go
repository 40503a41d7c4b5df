package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soltixdb/insight/internal/alerts"
	"github.com/soltixdb/insight/internal/config"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/registry"
	"github.com/soltixdb/insight/internal/router"
	"github.com/soltixdb/insight/internal/source"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := logging.NewFromConfig(cfg.Logging)
	logging.SetGlobal(logger)
	logger.Info("Insight service starting...",
		"version", Version, "commit", GitCommit, "build_time", BuildTime)

	// Setup field registry
	var reg registry.Registry
	if len(cfg.Etcd.Endpoints) > 0 {
		logger.Info("Connecting to etcd", "endpoints", cfg.Etcd.Endpoints)
		reg, err = registry.NewEtcdRegistry(registry.EtcdConfig{
			Endpoints:   cfg.Etcd.Endpoints,
			DialTimeout: cfg.Etcd.DialTimeout,
			Username:    cfg.Etcd.Username,
			Password:    cfg.Etcd.Password,
		})
		if err != nil {
			logger.Fatal("Failed to connect to etcd", "error", err)
		}
	} else {
		logger.Warn("No etcd endpoints configured - using in-memory field registry")
		reg = registry.NewMemoryRegistry()
	}
	defer func() { _ = reg.Close() }()

	// Setup series source
	logger.Info("Using SoltixDB source",
		"base_url", cfg.Source.BaseURL, "database", cfg.Source.Database)
	var src source.Source = source.NewSoltixSource(source.SoltixConfig{
		BaseURL:  cfg.Source.BaseURL,
		Database: cfg.Source.Database,
		APIKey:   cfg.Source.APIKey,
		Timeout:  cfg.Source.Timeout,
	}, logger)

	if cfg.Cache.Enabled {
		logger.Info("Series cache enabled", "url", cfg.Cache.URL, "ttl", cfg.Cache.TTL)
		src = source.NewCachedSource(src, source.CacheConfig{
			URL:      cfg.Cache.URL,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		}, logger)
	}

	// Setup alert publisher (optional)
	var publisher alerts.Publisher
	if cfg.Alerts.Enabled {
		logger.Info("Connecting to alert broker", "type", cfg.Alerts.Type, "url", cfg.Alerts.URL)
		publisher, err = alerts.NewPublisher(cfg.Alerts)
		if err != nil {
			logger.Fatal("Failed to connect to alert broker", "error", err)
		}
		defer func() { _ = publisher.Close() }()
	} else {
		logger.Info("Alert publishing disabled")
	}

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, src, reg, nil, publisher, *cfg)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
