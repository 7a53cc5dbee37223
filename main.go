package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/store-inventory-api/internal/app/demo"
	"github.com/mrops-br/store-inventory-api/internal/app/service"
	"github.com/mrops-br/store-inventory-api/internal/domain"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/config"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/http"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/telemetry"
	"golang.org/x/sync/errgroup"
)

const (
	instrumentationName = "store-inventory-api"
	shutdownTimeout     = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("store-inventory-api: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry
	telem, err := telemetry.NewTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	tracer := telem.TracerProvider.Tracer(instrumentationName)
	meter := telem.MeterProvider.Meter(instrumentationName)
	logger := telem.Logger

	logger.Info("Starting Store Inventory API")

	repo := memory.NewInventoryRepository(tracer, logger)
	inventoryService := service.NewInventoryService(repo, domain.NewFactory(), tracer, meter, logger)
	runner := demo.NewRunner(inventoryService, logger)

	if cfg.Demo.Seed {
		lines, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed demo inventory: %w", err)
		}
		for _, line := range lines {
			logger.Info(line)
		}
	}

	server := http.NewServer(&cfg.Server,
		handler.NewInventoryHandler(inventoryService, logger),
		handler.NewDemoHandler(runner, logger),
		logger,
		telem,
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	// gracefully shutdown the HTTP server, then flush telemetry
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
		if err := telem.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped")
	return nil
}
