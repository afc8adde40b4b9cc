package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/notification"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := cmd.LoadConfig(os.Args[1:], ".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), "dispatch", cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	gormDB, err := gorm.Open(gormpg.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dispatchMetrics := metrics.NewDispatchMetrics(registry)

	notifier, closer, err := newNotifier(cfg, logger, dispatchMetrics)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}
	defer func() { _ = closer.Close() }()

	app := cmd.NewCompositionRoot(cfg, gormDB, notifier, dispatchMetrics, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := startWebServer(ctx, app, registry, cfg.HTTPPort, logger); err != nil {
		logger.Error("web server", "error", err)
	}
}

// newNotifier publishes to Kafka when brokers are configured and falls back
// to the log otherwise.
func newNotifier(
	cfg cmd.Config,
	logger *slog.Logger,
	observer notification.DeliveryObserver,
) (ports.NotificationPort, io.Closer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("no kafka brokers configured, notifications go to the log")
		return notification.NewLogNotifier(logger), io.NopCloser(nil), nil
	}

	producer, err := notification.NewKafkaProducer(cfg.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	n := notification.NewKafkaNotifier(producer, cfg.KafkaCourierTopic, cfg.KafkaOrderTopic, logger, observer)
	return n, n, nil
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	registry *prometheus.Registry,
	port int,
	logger *slog.Logger,
) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "dispatch")
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	if err := app.CreateServer().RegisterRoutes(e); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%d", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	return nil
}
