package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-api/internal/app/api"
	ordersdatastore "github.com/Apurer/storefront-api/internal/domains/orders/adapters/datastore"
	platformobservability "github.com/Apurer/storefront-api/internal/platform/observability"
	orderactivities "github.com/Apurer/storefront-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/storefront-api/internal/platform/temporal/workflows/orders"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	backends, cleanupBackends := api.OpenBackends(ctx, cfg, logger)
	defer cleanupBackends()
	if backends.DB == nil {
		logger.Warn("worker writes orders to memory; the API will not see them")
	}
	orderActivities := orderactivities.NewActivities(ordersdatastore.NewRepository(backends.Datastore))

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.CreateHeader, activity.RegisterOptions{Name: orderactivities.CreateHeaderActivityName})
	w.RegisterActivityWithOptions(orderActivities.CreateItems, activity.RegisterOptions{Name: orderactivities.CreateItemsActivityName})
	w.RegisterActivityWithOptions(orderActivities.DeleteOrder, activity.RegisterOptions{Name: orderactivities.DeleteOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
