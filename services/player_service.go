package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/pelada/models"
	"github.com/Dosada05/pelada/repositories"
)

const EventPlayerUpdated = "PLAYER_UPDATED"

// Broadcaster pushes events to connected live clients.
type Broadcaster interface {
	Publish(eventType string, payload interface{})
}

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, name string) (*models.Player, error)
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	UpdatePlayer(ctx context.Context, input PlayerInput) (*models.Player, bool, error)
	Seed(ctx context.Context, force bool) (int, error)
}

type PlayerInput struct {
	Name                string   `json:"name"`
	Position            string   `json:"position"`
	AlternativePosition []string `json:"alternative_position"`
	Skill               int      `json:"skill"`
	Age                 int      `json:"age"`
	IsGuest             bool     `json:"is_guest"`
}

// toModel trims the input and drops alternatives that repeat the primary position.
func (in PlayerInput) toModel() models.Player {
	p := models.Player{
		Name:                strings.TrimSpace(in.Name),
		Position:            strings.TrimSpace(in.Position),
		AlternativePosition: make([]string, 0, len(in.AlternativePosition)),
		Skill:               in.Skill,
		Age:                 in.Age,
		IsGuest:             in.IsGuest,
	}
	for _, alt := range in.AlternativePosition {
		if alt = strings.TrimSpace(alt); alt != "" && alt != p.Position {
			p.AlternativePosition = append(p.AlternativePosition, alt)
		}
	}
	return p
}

type playerService struct {
	playerRepo  repositories.PlayerRepository
	broadcaster Broadcaster
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, broadcaster Broadcaster, logger *slog.Logger) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		playerRepo:  playerRepo,
		broadcaster: broadcaster,
		validate:    newValidator(),
		logger:      logger,
	}
}

// ListPlayers returns the roster, seeding the default one into an empty store first.
func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	count, err := s.playerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}
	if count == 0 {
		if _, err := s.Seed(ctx, false); err != nil {
			return nil, err
		}
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

func (s *playerService) GetPlayer(ctx context.Context, name string) (*models.Player, error) {
	player, err := s.playerRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %q: %w", name, err)
	}
	return player, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player := input.toModel()
	if err := validatePlayer(s.validate, &player); err != nil {
		return nil, err
	}

	if err := s.playerRepo.Create(ctx, &player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player %q: %w", player.Name, err)
	}

	s.logger.Info("player created", slog.String("name", player.Name), slog.String("position", player.Position))
	s.publish(EventPlayerUpdated, player)
	return &player, nil
}

// UpdatePlayer replaces a stored player matched by name. Unknown names (guests
// edited in the browser) are returned as-is with persisted=false.
func (s *playerService) UpdatePlayer(ctx context.Context, input PlayerInput) (*models.Player, bool, error) {
	player := input.toModel()
	if err := validatePlayer(s.validate, &player); err != nil {
		return nil, false, err
	}

	if err := s.playerRepo.Update(ctx, &player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			s.logger.Debug("update for unknown player ignored", slog.String("name", player.Name))
			return &player, false, nil
		}
		return nil, false, fmt.Errorf("failed to update player %q: %w", player.Name, err)
	}

	s.logger.Info("player updated",
		slog.String("name", player.Name),
		slog.String("position", player.Position),
		slog.Int("skill", player.Skill),
	)
	s.publish(EventPlayerUpdated, player)
	return &player, true, nil
}

// Seed writes the default roster. Without force it only touches an empty store.
func (s *playerService) Seed(ctx context.Context, force bool) (int, error) {
	if !force {
		count, err := s.playerRepo.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count players: %w", err)
		}
		if count > 0 {
			return 0, nil
		}
	}

	roster := DefaultRoster()
	if err := s.playerRepo.UpsertBatch(ctx, roster); err != nil {
		return 0, fmt.Errorf("failed to seed default roster: %w", err)
	}
	s.logger.Info("default roster seeded", slog.Int("players", len(roster)), slog.Bool("force", force))
	return len(roster), nil
}

func (s *playerService) publish(eventType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.Publish(eventType, payload)
	}
}
