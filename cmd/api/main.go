package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/api"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/config"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/face"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting Emotion API",
		slog.String("environment", cfg.Environment),
		slog.String("detector", cfg.DetectorType),
		slog.String("classifier", cfg.ClassifierType),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load models once; every request shares them
	detector, err := face.NewFaceDetector(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load face detector: %w", err)
	}
	defer closeProvider(logger, "detector", detector)

	classifier, err := face.NewEmotionClassifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to load emotion classifier: %w", err)
	}
	defer closeProvider(logger, "classifier", classifier)

	svc := service.NewEmotionService(detector, classifier, logger)

	// Setup router
	router := api.NewRouter(logger, svc, api.Options{
		BodyLimit:   cfg.MaxImageBytes,
		DocsEnabled: cfg.DocsEnabled,
		DocsHost:    cfg.Addr(),
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := cfg.Addr()
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")
	if err := router.Shutdown(shutdownTimeout); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}

func closeProvider(logger *slog.Logger, kind string, p any) {
	if err := face.CloseProvider(p); err != nil {
		logger.Error("failed to release "+kind, slog.Any("error", err))
	}
}
