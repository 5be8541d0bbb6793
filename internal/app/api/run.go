// Package api boots the order tracking HTTP process.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	slackclient "github.com/Apurer/go-order-tracker/internal/clients/http/slack"
	notifconfig "github.com/Apurer/go-order-tracker/internal/domains/notifications/adapters/config"
	notifslack "github.com/Apurer/go-order-tracker/internal/domains/notifications/adapters/slack"
	notifapp "github.com/Apurer/go-order-tracker/internal/domains/notifications/application"
	notifports "github.com/Apurer/go-order-tracker/internal/domains/notifications/ports"
	ordersmemory "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-order-tracker/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-order-tracker/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
	"github.com/Apurer/go-order-tracker/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-order-tracker/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-order-tracker/internal/platform/postgres"
)

// Run boots the order tracking HTTP API with observability, persistence, and
// notification scheduling wired.
func Run(ctx context.Context) error {
	const serviceName = "order-tracker-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()

	var uow ordersports.UnitOfWork
	var orderReader notifports.OrderReader
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		uow = orderspostgres.NewUnitOfWork(db)
		orderReader = orderspostgres.NewRepository(db)
	} else {
		repo := ordersmemory.NewRepository()
		uow = ordersmemory.NewUnitOfWork(repo)
		orderReader = repo
	}

	var scheduler ordersports.NotificationScheduler
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal unavailable, dispatching notifications inline", slog.String("error", err.Error()))
		temporalClient = nil
		dispatcher := notifapp.NewDispatcher(
			orderReader,
			notifslack.NewNotifier(slackclient.NewClient()),
			notifconfig.NewEnvSettings(),
			notifapp.WithLogger(logger),
		)
		scheduler = ordersworkflows.NewInlineScheduler(dispatcher, logger)
	} else {
		defer temporalClient.Close()
		scheduler = ordersworkflows.NewTemporalScheduler(temporalClient)
		logger.Info("Temporal notification scheduling enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreService := ordersapp.NewService(uow, scheduler, ordersapp.WithLogger(logger))
	service := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := NewRouter(service, db, temporalClient)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("order tracker API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order tracker API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
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
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
