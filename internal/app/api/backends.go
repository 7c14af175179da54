package api

import (
	"context"
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	favoritesmemory "github.com/Apurer/storefront-api/internal/domains/favorites/adapters/memory"
	favoritespostgres "github.com/Apurer/storefront-api/internal/domains/favorites/adapters/persistence/postgres"
	favoritesports "github.com/Apurer/storefront-api/internal/domains/favorites/ports"
	ordersdatastore "github.com/Apurer/storefront-api/internal/domains/orders/adapters/datastore"
	"github.com/Apurer/storefront-api/internal/platform/datastore"
	platformobservability "github.com/Apurer/storefront-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/storefront-api/internal/platform/postgres"
)

// Backends are the storage collaborators shared by the API and the worker.
type Backends struct {
	DB        *gorm.DB
	Datastore datastore.Store
	Favorites favoritesports.Storage
}

// OpenBackends connects to PostgreSQL when configured and falls back to memory otherwise.
func OpenBackends(ctx context.Context, cfg Config, logger *slog.Logger) (Backends, func()) {
	memory := Backends{
		Datastore: datastore.NewMemoryStore(datastore.WithUniqueColumn(ordersdatastore.OrdersTable, "order_number")),
		Favorites: favoritesmemory.NewStorage(),
	}
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory datastore and favorites storage")
		return memory, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDriver, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	logger.Info("datastore configured with postgres", slog.String("driver", cfg.PostgresDriver))
	return Backends{
		DB:        db,
		Datastore: datastore.NewGormStore(db),
		Favorites: favoritespostgres.NewStorage(db),
	}, func() { _ = sqlDB.Close() }
}

// DialTemporal connects a traced Temporal client.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
