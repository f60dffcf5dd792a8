package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Dosada05/pelada/models"
)

// filePlayerRepository keeps the roster in a single JSON document.
// Order in the file is preserved; new players are appended.
type filePlayerRepository struct {
	path string
	mu   sync.Mutex
}

func NewFilePlayerRepository(path string) PlayerRepository {
	return &filePlayerRepository{path: path}
}

func (r *filePlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *filePlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.load()
	if err != nil {
		return nil, err
	}
	if i := indexByName(players, name); i >= 0 {
		p := players[i]
		return &p, nil
	}
	return nil, ErrPlayerNotFound
}

func (r *filePlayerRepository) Count(ctx context.Context) (int, error) {
	players, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(players), nil
}

func (r *filePlayerRepository) Create(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.load()
	if err != nil {
		return err
	}
	if indexByName(players, player.Name) >= 0 {
		return ErrPlayerNameConflict
	}
	return r.save(append(players, clonePlayer(*player)))
}

func (r *filePlayerRepository) Update(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.load()
	if err != nil {
		return err
	}
	i := indexByName(players, player.Name)
	if i < 0 {
		return ErrPlayerNotFound
	}
	players[i] = clonePlayer(*player)
	return r.save(players)
}

func (r *filePlayerRepository) UpsertBatch(ctx context.Context, batch []models.Player) error {
	if len(batch) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	players, err := r.load()
	if err != nil {
		return err
	}
	for _, p := range batch {
		if i := indexByName(players, p.Name); i >= 0 {
			players[i] = clonePlayer(p)
		} else {
			players = append(players, clonePlayer(p))
		}
	}
	return r.save(players)
}

// load reads the file; a missing file is an empty roster. Caller holds mu.
func (r *filePlayerRepository) load() ([]models.Player, error) {
	players := make([]models.Player, 0)

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return players, nil
		}
		return nil, fmt.Errorf("failed to open roster file %s: %w", r.path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&players); err != nil {
		return nil, fmt.Errorf("failed to decode roster file %s: %w", r.path, err)
	}
	for i := range players {
		players[i].Normalize()
	}
	return players, nil
}

// save writes to a temp file in the same directory and renames it over the target.
func (r *filePlayerRepository) save(players []models.Player) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create roster directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(players, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp roster file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write roster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp roster file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace roster file %s: %w", r.path, err)
	}
	return nil
}

func indexByName(players []models.Player, name string) int {
	for i, p := range players {
		if p.Name == name {
			return i
		}
	}
	return -1
}
