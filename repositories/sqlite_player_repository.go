package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pelada/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type sqlitePlayerRepository struct {
	db *sql.DB
}

func NewSQLitePlayerRepository(db *sql.DB) PlayerRepository {
	return &sqlitePlayerRepository{db: db}
}

const sqlitePlayerColumns = `name, position, alternative_position, skill, age, is_guest`

func scanSQLitePlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	var rawAlts string
	if err := row.Scan(&p.Name, &p.Position, &rawAlts, &p.Skill, &p.Age, &p.IsGuest); err != nil {
		return nil, err
	}
	alts, err := decodePositions(rawAlts)
	if err != nil {
		return nil, err
	}
	p.AlternativePosition = alts
	return &p, nil
}

func (r *sqlitePlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + sqlitePlayerColumns + ` FROM players ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanSQLitePlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *sqlitePlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT ` + sqlitePlayerColumns + ` FROM players WHERE name = ?`
	p, err := scanSQLitePlayer(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %q: %w", name, err)
	}
	return p, nil
}

func (r *sqlitePlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *sqlitePlayerRepository) Create(ctx context.Context, player *models.Player) error {
	alts, err := encodePositions(player.AlternativePosition)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO players (name, position, alternative_position, skill, age, is_guest)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, player.Name, player.Position, alts, player.Skill, player.Age, player.IsGuest)
	if err != nil {
		if isSQLiteConstraint(err) {
			return ErrPlayerNameConflict
		}
		return fmt.Errorf("failed to create player %q: %w", player.Name, err)
	}
	return nil
}

func (r *sqlitePlayerRepository) Update(ctx context.Context, player *models.Player) error {
	alts, err := encodePositions(player.AlternativePosition)
	if err != nil {
		return err
	}
	query := `
		UPDATE players
		SET position = ?, alternative_position = ?, skill = ?, age = ?, is_guest = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?`
	result, err := r.db.ExecContext(ctx, query, player.Position, alts, player.Skill, player.Age, player.IsGuest, player.Name)
	if err != nil {
		return fmt.Errorf("failed to update player %q: %w", player.Name, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

const sqliteUpsertQuery = `
	INSERT INTO players (name, position, alternative_position, skill, age, is_guest)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET
		position = excluded.position,
		alternative_position = excluded.alternative_position,
		skill = excluded.skill,
		age = excluded.age,
		is_guest = excluded.is_guest,
		updated_at = CURRENT_TIMESTAMP`

func (r *sqlitePlayerRepository) upsert(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	alts, err := encodePositions(player.AlternativePosition)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, sqliteUpsertQuery, player.Name, player.Position, alts, player.Skill, player.Age, player.IsGuest)
	if err != nil {
		return fmt.Errorf("failed to upsert player %q: %w", player.Name, err)
	}
	return nil
}

func (r *sqlitePlayerRepository) UpsertBatch(ctx context.Context, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for i := range players {
			if err := r.upsert(ctx, tx, &players[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func isSQLiteConstraint(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Младший байт расширенного кода - основной код ошибки.
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
