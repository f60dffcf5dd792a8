package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pelada/models"
	"github.com/lib/pq"
)

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const postgresPlayerColumns = `name, position, alternative_position, skill, age, is_guest`

func scanPostgresPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	var alts pq.StringArray
	if err := row.Scan(&p.Name, &p.Position, &alts, &p.Skill, &p.Age, &p.IsGuest); err != nil {
		return nil, err
	}
	p.AlternativePosition = []string(alts)
	p.Normalize()
	return &p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + postgresPlayerColumns + ` FROM players ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPostgresPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT ` + postgresPlayerColumns + ` FROM players WHERE name = $1`
	p, err := scanPostgresPlayer(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %q: %w", name, err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, position, alternative_position, skill, age, is_guest)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.Position,
		pq.Array(nonNil(player.AlternativePosition)),
		player.Skill,
		player.Age,
		player.IsGuest,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrPlayerNameConflict
		}
		return fmt.Errorf("failed to create player %q: %w", player.Name, err)
	}
	return nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET position = $2, alternative_position = $3, skill = $4, age = $5, is_guest = $6, updated_at = NOW()
		WHERE name = $1`
	result, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.Position,
		pq.Array(nonNil(player.AlternativePosition)),
		player.Skill,
		player.Age,
		player.IsGuest,
	)
	if err != nil {
		return fmt.Errorf("failed to update player %q: %w", player.Name, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

const postgresUpsertQuery = `
	INSERT INTO players (name, position, alternative_position, skill, age, is_guest)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (name) DO UPDATE SET
		position = EXCLUDED.position,
		alternative_position = EXCLUDED.alternative_position,
		skill = EXCLUDED.skill,
		age = EXCLUDED.age,
		is_guest = EXCLUDED.is_guest,
		updated_at = NOW()`

func (r *postgresPlayerRepository) upsert(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	_, err := exec.ExecContext(ctx, postgresUpsertQuery,
		player.Name,
		player.Position,
		pq.Array(nonNil(player.AlternativePosition)),
		player.Skill,
		player.Age,
		player.IsGuest,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player %q: %w", player.Name, err)
	}
	return nil
}

func (r *postgresPlayerRepository) UpsertBatch(ctx context.Context, players []models.Player) error {
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

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
