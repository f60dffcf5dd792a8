package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/pelada/config"
	"github.com/Dosada05/pelada/draft"
	"github.com/Dosada05/pelada/handlers"
	"github.com/Dosada05/pelada/live"
	"github.com/Dosada05/pelada/metrics"
	"github.com/Dosada05/pelada/routes"
	"github.com/Dosada05/pelada/services"
	"github.com/Dosada05/pelada/storage"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
		slog.String("variant", cfg.FormationVariant),
	)

	table, err := formationTable(cfg.FormationVariant, cfg.FormationsFile)
	if err != nil {
		return fmt.Errorf("failed to load formation table: %w", err)
	}

	playerRepo, closeRepo, err := openPlayerRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Архив выгрузок в Cloudflare R2 (опционально)
	var uploader storage.FileUploader
	if cfg.ArchiveEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	}

	var (
		recorder       *metrics.Recorder
		lineupRecorder services.LineupRecorder
	)
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
		lineupRecorder = recorder
	}

	hub := live.NewHub(logger)

	playerService := services.NewPlayerService(playerRepo, hub, logger)
	lineupService := services.NewLineupService(draft.New(table), uploader, hub, lineupRecorder, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		routes.Options{
			Logger:         logger,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Recorder:       recorder,
		},
		handlers.NewSystemHandler(cfg.StaticDir),
		handlers.NewPlayerHandler(playerService),
		handlers.NewLineupHandler(lineupService),
		handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("application exited")
	return nil
}
