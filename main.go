package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront_server/api"
	"storefront_server/api/middleware"
	"storefront_server/config"
	"storefront_server/database"
	"storefront_server/database/inmemory"
	"storefront_server/services"
	"storefront_server/storage"
	"storefront_server/structs"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init loads environment variables and initializes config and logger
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}
}

// openStores connects the catalog backend selected by DB_DRIVER.
func openStores(ctx context.Context) (services.Stores, services.Pinger, error) {
	if config.UsesMemoryStore() {
		mem := inmemory.New()
		if cfg.Database.Seed {
			if err := mem.Seed(ctx, database.DemoCatalog()); err != nil {
				return services.Stores{}, nil, err
			}
		}
		logger.Warn("Using the in-memory catalog; data is lost on restart")
		return services.Stores{
			Categories: mem.Categories(),
			Banners:    mem.Banners(),
			Brands:     mem.Brands(),
			Products:   mem.Products(),
		}, mem, nil
	}

	if err := database.Initialize(); err != nil {
		return services.Stores{}, nil, err
	}
	db := database.GetInstance()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			return services.Stores{}, nil, err
		}
	}
	if cfg.Database.Seed {
		if err := database.Seed(ctx, db); err != nil {
			return services.Stores{}, nil, err
		}
		logger.Info("Seeded demo catalog")
	}

	return services.Stores{
		Categories: database.NewCategoryRepository(db),
		Banners:    database.NewBannerRepository(db),
		Brands:     database.NewBrandRepository(db),
		Products:   database.NewProductRepository(db),
	}, db, nil
}

func main() {
	ctx := context.Background()

	stores, pinger, err := openStores(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}

	disk, err := storage.NewDisk(cfg.Storage.Root)
	if err != nil {
		logger.Fatal("Failed to open storage", gecho.Field("error", err))
	}

	var counter middleware.RateCounter
	var cache *services.CacheService
	if cfg.RateLimit.Enabled {
		cache = services.NewCacheService(logger, cfg.Cache)
		counter = cache

		pingCtx, cancel := context.WithTimeout(ctx, cfg.Cache.DialTimeout)
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, rate limiting fails open until it recovers", gecho.Field("error", err))
		}
		cancel()
	}

	sm := services.NewServiceManager(logger, cfg, stores, disk, pinger, cache)

	srv := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, sm, counter),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Setup graceful shutdown BEFORE starting the server
	done := setupGracefulShutdown(srv, cache)

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", gecho.Field("error", err))
	}
	<-done
}

// setupGracefulShutdown drains in-flight requests on SIGINT/SIGTERM, then
// closes the cache and database. The returned channel closes when done.
func setupGracefulShutdown(srv *http.Server, cache *services.CacheService) <-chan struct{} {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	logger.Info("Graceful shutdown handler initialized")

	go func() {
		defer close(done)
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown failed", gecho.Field("error", err))
		}

		if cache != nil {
			if err := cache.Close(); err != nil {
				logger.Warn("Failed to close cache", gecho.Field("error", err))
			}
		}
		if !config.UsesMemoryStore() {
			if err := database.CloseInstance(); err != nil {
				logger.Warn("Failed to close database", gecho.Field("error", err))
			}
		}
	}()

	return done
}
