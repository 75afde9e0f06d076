package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pos-admin-api/internal/config"
	"pos-admin-api/internal/handler"
	"pos-admin-api/internal/kv"
	"pos-admin-api/internal/model"
	"pos-admin-api/internal/repository"
	"pos-admin-api/internal/router"
	"pos-admin-api/internal/service"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// openStore builds the local key-value store selected by STORE_TYPE.
func openStore(cfg config.StoreConfig) (kv.Store, error) {
	switch cfg.Type {
	case "redis":
		return kv.NewRedisStore(kv.RedisConfig{
			Addr:      cfg.RedisAddress(),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		return kv.NewSQLiteStore(cfg.Path)
	case "mysql":
		return kv.NewMySQLStore(cfg.MySQLDSN())
	case "postgres":
		return kv.NewPostgresStore(cfg.PostgresDSN())
	default:
		return kv.NewMemoryStore(), nil
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting POS admin API...")

	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)
	if cfg.App.Debug {
		log.Printf("Debug: store=%s remote_url=%q fallback=%v seed=%v remote_timeout=%s",
			cfg.Store.Type, cfg.Remote.BaseURL, cfg.Remote.FallbackEnabled, cfg.Seed.SampleData, cfg.Remote.Timeout)
	}

	store, err := openStore(cfg.Store)
	if err != nil {
		log.Printf("Warning: %s store unavailable, using memory store: %v", cfg.Store.Type, err)
		store = kv.NewMemoryStore()
		cfg.Store.Type = "memory"
	}
	defer store.Close()
	log.Printf("Local store initialized (%s)", cfg.Store.Type)

	remote := repository.NewRemoteRecordRepository(repository.RemoteConfig{
		BaseURL:  cfg.Remote.BaseURL,
		APIKey:   cfg.Remote.APIKey,
		Timeout:  cfg.Remote.Timeout,
		Settings: store,
	})

	var fallback repository.RecordRepository
	if cfg.Remote.FallbackEnabled {
		fallback = repository.NewLocalRecordRepository(store)
	}
	selector := service.NewTransportSelector(remote, fallback)
	seeder := service.NewSeeder(selector)

	outlets := service.NewCollection[model.Outlet](selector, model.ResourceOutlets)
	if cfg.Seed.SampleData {
		outlets.OnFirstUse(func(ctx context.Context) bool {
			return seeder.Seed(ctx).Completed()
		})
	}
	discounts := service.NewCollection[model.Discount](selector, model.ResourceDiscounts)
	selection := service.NewSelectionService(store)

	r := router.New(router.Config{
		Handler:          handler.New(cfg.App.Name, cfg.App.Version, store),
		OutletHandler:    handler.NewResourceHandler(outlets),
		DiscountHandler:  handler.NewResourceHandler(discounts),
		SelectionHandler: handler.NewSelectionHandler(selection),
		SettingsHandler:  handler.NewSettingsHandler(remote),
		AdminHandler:     handler.NewAdminHandler(selector, remote, seeder, cfg.Store.Type),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      otelhttp.NewHandler(r, cfg.App.Name),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
