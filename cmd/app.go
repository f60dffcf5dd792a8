package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/pelada/config"
	"github.com/Dosada05/pelada/db"
	"github.com/Dosada05/pelada/draft"
	"github.com/Dosada05/pelada/repositories"
)

const dbConnectTimeout = 5 * time.Second

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// formationTable picks the YAML override when configured, otherwise the named built-in variant.
func formationTable(variant, formationsFile string) (*draft.FormationTable, error) {
	if formationsFile != "" {
		return draft.LoadFormationTable(formationsFile)
	}
	return draft.TableByName(variant)
}

// openPlayerRepository returns the roster store for the configured driver and a
// close func for its resources.
func openPlayerRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.PlayerRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx, conn, db.DialectPostgres); err != nil {
			conn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established", slog.String("driver", cfg.StorageDriver))
		return repositories.NewPostgresPlayerRepository(conn), closeDB(conn, logger), nil

	case config.StorageSQLite:
		conn, err := db.ConnectSQLite(cfg.SQLitePath, dbConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := db.EnsureSchema(ctx, conn, db.DialectSQLite); err != nil {
			conn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established", slog.String("driver", cfg.StorageDriver), slog.String("path", cfg.SQLitePath))
		return repositories.NewSQLitePlayerRepository(conn), closeDB(conn, logger), nil

	case config.StorageFile:
		logger.Info("using file roster store", slog.String("path", cfg.DataFile))
		return repositories.NewFilePlayerRepository(cfg.DataFile), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func closeDB(conn *sql.DB, logger *slog.Logger) func() {
	return func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
			return
		}
		logger.Info("database connection closed")
	}
}
