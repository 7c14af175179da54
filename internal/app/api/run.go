package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	storefrontserver "github.com/Apurer/storefront-api/go"

	cartmemory "github.com/Apurer/storefront-api/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/storefront-api/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/storefront-api/internal/domains/cart/application"
	checkoutmemory "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/observability"
	checkoutorders "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/orders"
	checkoutapp "github.com/Apurer/storefront-api/internal/domains/checkout/application"
	favoritesobs "github.com/Apurer/storefront-api/internal/domains/favorites/adapters/observability"
	favoritesapp "github.com/Apurer/storefront-api/internal/domains/favorites/application"
	ordersdatastore "github.com/Apurer/storefront-api/internal/domains/orders/adapters/datastore"
	ordersobs "github.com/Apurer/storefront-api/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/storefront-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/storefront-api/internal/domains/orders/application"
	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/storefront-api/internal/platform/observability"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API with observability, storage, and workflows wired.
// It returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	backends, cleanupBackends := OpenBackends(ctx, cfg, logger)
	defer cleanupBackends()

	orderService := ordersobs.New(
		ordersapp.NewService(ordersdatastore.NewRepository(backends.Datastore), ordersapp.WithLogger(logger)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := DialTemporal(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, creating orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	cartService := cartobs.New(
		cartapp.NewService(cartmemory.NewRepository()),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	favoritesService := favoritesobs.New(
		favoritesapp.NewService(backends.Favorites,
			favoritesapp.WithNamespace(cfg.FavoritesNamespace),
			favoritesapp.WithCacheSize(cfg.FavoritesCacheSize),
			favoritesapp.WithLogger(logger),
		),
		favoritesobs.WithLogger(logger),
		favoritesobs.WithTracer(instruments.Tracer("internal.favorites.application")),
		favoritesobs.WithMeter(instruments.Meter("internal.favorites.application")),
	)
	checkoutService := checkoutobs.New(
		checkoutapp.NewService(
			checkoutmemory.NewRepository(),
			cartService,
			checkoutorders.NewPlacer(orderWorkflows),
			checkoutapp.WithLogger(logger),
		),
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	handlers := storefrontserver.ApiHandleFunctions{
		CartAPI:      storefrontserver.NewCartAPI(cartService),
		FavoritesAPI: storefrontserver.NewFavoritesAPI(favoritesService),
		CheckoutAPI:  storefrontserver.NewCheckoutAPI(checkoutService),
		OrderAPI:     storefrontserver.NewOrderAPI(orderService),
	}
	router := storefrontserver.NewRouter(handlers, storefrontserver.RouterOptions{
		ServiceName:    serviceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Storefront API listening", slog.String("addr", cfg.Addr()))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Storefront API server exited", slog.String("addr", cfg.Addr()), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down Storefront API")
	return server.Shutdown(shutdownCtx)
}
