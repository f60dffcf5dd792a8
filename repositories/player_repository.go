package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/pelada/models"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

// PlayerRepository хранит постоянный состав. Игроки никогда не удаляются.
type PlayerRepository interface {
	List(ctx context.Context) ([]models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, player *models.Player) error
	// Update replaces an existing player; ErrPlayerNotFound when the name is unknown.
	Update(ctx context.Context, player *models.Player) error
	UpsertBatch(ctx context.Context, players []models.Player) error
}
