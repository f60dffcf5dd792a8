package draft

import (
	"math/rand"
	"slices"
	"time"

	"github.com/Dosada05/pelada/models"
)

type Option func(*Engine)

// WithSeed makes every draw use the same seed, so results repeat exactly.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = func() int64 { return seed }
	}
}

// Engine splits a roster into two teams. It keeps no state between calls
// and is safe for concurrent use.
type Engine struct {
	table *FormationTable
	seed  func() int64
}

type Result struct {
	Team1         []models.AssignedPlayer
	Team2         []models.AssignedPlayer
	FormationSize int
	Seed          int64
}

func New(table *FormationTable, opts ...Option) *Engine {
	if table == nil {
		table = TableA()
	}
	e := &Engine{
		table: table,
		seed:  func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Table() *FormationTable {
	return e.table
}

// Assign draws two teams using the engine's seed source.
func (e *Engine) Assign(players []models.Player) (*Result, error) {
	return e.AssignWithSeed(players, e.seed())
}

// AssignWithSeed draws two teams with an explicit seed.
func (e *Engine) AssignWithSeed(players []models.Player, seed int64) (*Result, error) {
	slots, size, err := e.table.SlotsFor(len(players))
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	pool := slices.Clone(players)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	team1 := make([]models.AssignedPlayer, 0, len(players)/2+1)
	team2 := make([]models.AssignedPlayer, 0, len(players)/2+1)

	// Титульные места: на каждую позицию обе команды делают по одному выбору,
	// кто выбирает первым решает жребий.
	for _, slot := range slots {
		turns := []*[]models.AssignedPlayer{&team1, &team2}
		rng.Shuffle(len(turns), func(i, j int) { turns[i], turns[j] = turns[j], turns[i] })

		for _, team := range turns {
			if len(pool) == 0 {
				break
			}
			var best models.Player
			best, pool = pickBest(slot, pool)
			*team = append(*team, assigned(best, slot))
		}
	}

	distributeLeftovers(pool, &team1, &team2)

	e.sortForDisplay(team1)
	e.sortForDisplay(team2)

	return &Result{
		Team1:         team1,
		Team2:         team2,
		FormationSize: size,
		Seed:          seed,
	}, nil
}

// pickBest stable-sorts pool by priority for slot (best first) and pops the head.
// pool must not be empty.
func pickBest(slot string, pool []models.Player) (models.Player, []models.Player) {
	slices.SortStableFunc(pool, func(a, b models.Player) int {
		return ComparePriority(Priority(slot, b), Priority(slot, a))
	})
	return pool[0], pool[1:]
}

// distributeLeftovers hands the remaining players out strongest first,
// always to the smaller team; team1 wins ties.
func distributeLeftovers(pool []models.Player, team1, team2 *[]models.AssignedPlayer) {
	if len(pool) == 0 {
		return
	}
	slices.SortStableFunc(pool, func(a, b models.Player) int {
		return compareLeftover(b, a)
	})
	for _, p := range pool {
		entry := assigned(p, p.Position)
		if len(*team1) <= len(*team2) {
			*team1 = append(*team1, entry)
		} else {
			*team2 = append(*team2, entry)
		}
	}
}

func (e *Engine) sortForDisplay(team []models.AssignedPlayer) {
	slices.SortStableFunc(team, func(a, b models.AssignedPlayer) int {
		return e.table.Rank(a.AssignedPosition) - e.table.Rank(b.AssignedPosition)
	})
}

func assigned(p models.Player, position string) models.AssignedPlayer {
	p.Normalize()
	return models.AssignedPlayer{Player: p, AssignedPosition: position}
}
