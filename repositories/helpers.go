package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/pelada/models"
)

type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	return fn(tx)
}

func encodePositions(positions []string) (string, error) {
	if positions == nil {
		positions = []string{}
	}
	b, err := json.Marshal(positions)
	if err != nil {
		return "", fmt.Errorf("failed to encode alternative positions: %w", err)
	}
	return string(b), nil
}

func decodePositions(raw string) ([]string, error) {
	positions := []string{}
	if raw == "" {
		return positions, nil
	}
	if err := json.Unmarshal([]byte(raw), &positions); err != nil {
		return nil, fmt.Errorf("failed to decode alternative positions %q: %w", raw, err)
	}
	return positions, nil
}

func clonePlayer(p models.Player) models.Player {
	alts := make([]string, len(p.AlternativePosition))
	copy(alts, p.AlternativePosition)
	p.AlternativePosition = alts
	return p
}
