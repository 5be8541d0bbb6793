package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	slackclient "github.com/Apurer/go-order-tracker/internal/clients/http/slack"
	notifconfig "github.com/Apurer/go-order-tracker/internal/domains/notifications/adapters/config"
	notifslack "github.com/Apurer/go-order-tracker/internal/domains/notifications/adapters/slack"
	notifapp "github.com/Apurer/go-order-tracker/internal/domains/notifications/application"
	notifports "github.com/Apurer/go-order-tracker/internal/domains/notifications/ports"
	ordersmemory "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/persistence/postgres"
	notifworkflows "github.com/Apurer/go-order-tracker/internal/durable/temporal/workflows/notifications"
	platformobservability "github.com/Apurer/go-order-tracker/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-order-tracker/internal/platform/postgres"
	notifactivities "github.com/Apurer/go-order-tracker/internal/platform/temporal/activities/notifications"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-tracker-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	orderReader, cleanupRepo := buildOrderReader(ctx, logger)
	defer cleanupRepo()

	dispatcher := notifapp.NewDispatcher(
		orderReader,
		notifslack.NewNotifier(slackclient.NewClient()),
		notifconfig.NewEnvSettings(),
		notifapp.WithLogger(logger),
	)
	activities := notifactivities.NewActivities(dispatcher)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, notifworkflows.OrderNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(notifworkflows.OrderNotificationWorkflow, workflow.RegisterOptions{Name: notifworkflows.OrderNotificationWorkflowName})
	w.RegisterActivityWithOptions(activities.SendOrderNotification, activity.RegisterOptions{Name: notifworkflows.SendNotificationActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", notifworkflows.OrderNotificationTaskQueue),
		slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildOrderReader opens the shared order store. A worker without Postgres can
// only see its own process memory, so the fallback is for local smoke runs.
func buildOrderReader(ctx context.Context, logger *slog.Logger) (notifports.OrderReader, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	logger.Info("worker order store configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
