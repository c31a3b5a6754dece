package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/regsight/regsight-core/internal/api"
	"github.com/regsight/regsight-core/internal/config"
	"github.com/regsight/regsight-core/internal/repo"
	"github.com/regsight/regsight-core/internal/services"
	"github.com/regsight/regsight-core/pkg/cache"
	"github.com/regsight/regsight-core/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)
	logger.Info("Starting REGSIGHT-CORE", "version", "v1.0.0", "environment", cfg.Environment)

	// Initialize Valkey caching, falling back to the in-memory cache so a
	// missing Valkey never blocks the dashboard.
	valkeyCache := initCache(cfg, logger)

	// Seeded indicator catalogue and CAPA register
	catalog := repo.NewSeededRPICatalog()
	capaStore := repo.NewSeededCAPAStore()
	logger.Info("Indicator catalogue loaded", "rpis", catalog.Len(), "capas", capaStore.Len())

	capaService := services.NewCAPAService(capaStore, catalog, logger)
	scorecardService := services.NewScorecardService(catalog, capaStore, logger)

	// AI advisory gateway (optional)
	var advisory services.AdvisoryService
	if provider, err := services.NewAdvisoryService(cfg.Advisory, logger); err != nil {
		logger.Warn("Advisory service unavailable", "error", err)
	} else {
		advisory = services.NewCachedAdvisoryService(provider, cfg.Advisory.Cache, valkeyCache, logger)
		logger.Info("Advisory service initialized",
			"provider", provider.GetProviderName(), "model", provider.GetModelName())
	}

	// Initialize API server
	apiServer := api.NewServer(cfg, logger, valkeyCache, catalog, capaService, scorecardService, advisory)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// Start server
	if err := apiServer.Start(ctx); err != nil {
		logger.Fatal("Server failed to start", "error", err)
	}

	logger.Info("REGSIGHT-CORE shutdown complete")
}

func initCache(cfg *config.Config, log logger.Logger) cache.Valkey {
	ttl := time.Duration(cfg.Cache.TTL) * time.Second

	if len(cfg.Cache.Nodes) == 1 {
		if c, err := cache.NewValkeySingle(cfg.Cache.Nodes[0], cfg.Cache.DB, cfg.Cache.Password, ttl); err == nil {
			log.Info("Valkey single-node cache initialized", "addr", cfg.Cache.Nodes[0])
			return c
		} else {
			log.Warn("Valkey single-node cache unavailable", "error", err)
		}
	} else if len(cfg.Cache.Nodes) > 1 {
		if c, err := cache.NewValkeyCluster(cfg.Cache.Nodes, ttl); err == nil {
			log.Info("Valkey cluster cache initialized", "nodes", len(cfg.Cache.Nodes))
			return c
		} else {
			log.Warn("Valkey cluster cache unavailable", "error", err)
		}
	}

	return cache.NewNoopValkeyCache(log)
}
