package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/packfinderz-pos/api/controllers"
	"github.com/angelmondragon/packfinderz-pos/api/routes"
	"github.com/angelmondragon/packfinderz-pos/internal/auth"
	"github.com/angelmondragon/packfinderz-pos/internal/cart"
	"github.com/angelmondragon/packfinderz-pos/internal/catalog"
	"github.com/angelmondragon/packfinderz-pos/internal/sales"
	"github.com/angelmondragon/packfinderz-pos/internal/settings"
	"github.com/angelmondragon/packfinderz-pos/pkg/config"
	"github.com/angelmondragon/packfinderz-pos/pkg/db"
	"github.com/angelmondragon/packfinderz-pos/pkg/env"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/metrics"
	"github.com/angelmondragon/packfinderz-pos/pkg/migrate"
	"github.com/angelmondragon/packfinderz-pos/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos-api",
		TerminalID:  cfg.Terminal.ID,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "pos api stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	ready := []controllers.ReadinessCheck{{Name: "db", Pinger: dbClient}}
	var store kvstore.Store
	switch cfg.KV.Backend {
	case config.KVBackendRedis:
		redisClient, rerr := redis.New(ctx, cfg.Redis, cfg.Terminal.KeyNamespace, logg)
		if rerr != nil {
			return rerr
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		store = kvstore.NewRedis(redisClient)
		ready = append(ready, controllers.ReadinessCheck{Name: "redis", Pinger: redisClient})
	case config.KVBackendMemory:
		logg.Warn(ctx, "kv backend is in-memory; held sales and history are lost on restart")
		store = kvstore.NewMemory()
	default:
		store = kvstore.NewDB(dbClient.DB())
	}

	defaults, err := settings.DefaultsFromConfig(cfg.Settings)
	if err != nil {
		return err
	}
	settingsSvc, err := settings.NewService(ctx, settings.ServiceParams{
		Store:    store,
		Defaults: defaults,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	session, err := auth.NewSession(ctx, auth.SessionParams{
		Store:            store,
		DefaultCashierID: cfg.Terminal.DefaultCashierID,
		Logger:           logg,
	})
	if err != nil {
		return err
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	if err := catalog.LoadSeedFile(ctx, catalogSvc, cfg.Catalog.SeedFile, logg); err != nil {
		return err
	}

	salesSvc, err := sales.NewService(sales.ServiceParams{
		Repo:             sales.NewRepository(dbClient.DB()),
		Tx:               dbClient,
		DefaultCashierID: cfg.Terminal.DefaultCashierID,
		Logger:           logg,
	})
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cartSvc, err := cart.NewService(ctx, cart.ServiceParams{
		Catalog:  catalogSvc,
		Settings: settingsSvc,
		Cashier:  session,
		Sales:    salesSvc,
		Store:    store,
		Metrics:  metrics.NewSaleMetrics(registry),
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Cart:     cartSvc,
			Catalog:  catalogSvc,
			Sales:    salesSvc,
			Settings: settingsSvc,
			Session:  session,
			Gatherer: registry,
			Ready:    ready,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"kv_backend": cfg.KV.Backend,
		"dialect":    dbClient.Dialect(),
	})
	logg.Info(logCtx, "starting pos api server")

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down pos api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
