package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/viscontilabs/bitstore-backend/api"
	"github.com/viscontilabs/bitstore-backend/api/routes"
	cartsvc "github.com/viscontilabs/bitstore-backend/internal/cart"
	catalogsvc "github.com/viscontilabs/bitstore-backend/internal/catalog"
	checkoutsvc "github.com/viscontilabs/bitstore-backend/internal/checkout"
	ordersvc "github.com/viscontilabs/bitstore-backend/internal/orders"
	"github.com/viscontilabs/bitstore-backend/pkg/config"
	"github.com/viscontilabs/bitstore-backend/pkg/db"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
	"github.com/viscontilabs/bitstore-backend/pkg/metrics"
	"github.com/viscontilabs/bitstore-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		closeErr := dbClient.Close()
		return multierr.Append(err, closeErr)
	}
	logg.Info(ctx, "redis connection established")

	if err := dbClient.DB().WithContext(ctx).AutoMigrate(
		&catalogsvc.Product{},
		&ordersvc.Order{},
		&ordersvc.OrderItem{},
	); err != nil {
		return multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}

	catalogRepo := catalogsvc.NewRepository(dbClient.DB())
	if cfg.Catalog.SeedOnBoot || cfg.App.IsDev() {
		count, err := catalogRepo.Count(ctx)
		if err != nil {
			return multierr.Combine(err, redisClient.Close(), dbClient.Close())
		}
		if count == 0 {
			if err := catalogRepo.Seed(ctx); err != nil {
				return multierr.Combine(err, redisClient.Close(), dbClient.Close())
			}
			logg.Info(ctx, "catalog seeded with initial products")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Cart.SlotTTL)
	if err != nil {
		return multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}
	cartManager := cartsvc.NewManager(cartStore, logg, storefrontMetrics)

	catalogService, err := catalogsvc.NewService(catalogRepo, cfg.Catalog, logg)
	if err != nil {
		return multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}

	ordersRepo := ordersvc.NewRepository(dbClient.DB())
	ordersService, err := ordersvc.NewService(ordersRepo)
	if err != nil {
		return multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}

	checkoutService, err := checkoutsvc.NewService(dbClient, ordersRepo, logg, storefrontMetrics)
	if err != nil {
		return multierr.Combine(err, redisClient.Close(), dbClient.Close())
	}

	router := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		PromRegistry:    registry,
		CartManager:     cartManager,
		CatalogService:  catalogService,
		CheckoutService: checkoutService,
		OrdersService:   ordersService,
	})

	server := api.NewServer(cfg, router)

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": server.Addr,
	})
	logg.Info(startCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	var runErr error
	select {
	case err := <-serveErr:
		runErr = err
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		runErr = server.Shutdown(shutdownCtx)
		cancel()
		runErr = multierr.Append(runErr, <-serveErr)
	}

	runErr = multierr.Append(runErr, redisClient.Close())
	runErr = multierr.Append(runErr, dbClient.Close())
	return runErr
}
