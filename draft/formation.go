package draft

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dosada05/pelada/models"
)

const (
	MinPlayers = 16

	VariantA = "a"
	VariantB = "b"
)

var ErrInsufficientPlayers = fmt.Errorf("at least %d players are required", MinPlayers)

var formationSizes = []int{7, 8, 9, 10}

// FormationTable maps a formation size to the slots each team fills,
// plus the rank used to order a finished team for display.
type FormationTable struct {
	Name         string
	Slots        map[int][]string
	DisplayOrder map[string]int
}

const unrankedPosition = 99

// FormationSize picks the formation bracket for a roster of total players.
func FormationSize(total int) (int, error) {
	switch {
	case total < MinPlayers:
		return 0, ErrInsufficientPlayers
	case total <= 17:
		return 7, nil
	case total <= 19:
		return 8, nil
	case total <= 21:
		return 9, nil
	default:
		return 10, nil
	}
}

// SlotsFor returns the slot sequence for a roster of total players.
func (t *FormationTable) SlotsFor(total int) ([]string, int, error) {
	size, err := FormationSize(total)
	if err != nil {
		return nil, 0, err
	}
	slots, ok := t.Slots[size]
	if !ok {
		return nil, 0, fmt.Errorf("formation table %q has no slots for size %d", t.Name, size)
	}
	return slots, size, nil
}

func (t *FormationTable) Rank(position string) int {
	if rank, ok := t.DisplayOrder[position]; ok {
		return rank
	}
	return unrankedPosition
}

// TableA has no separate defensive midfielder: central midfield is all MC.
func TableA() *FormationTable {
	return &FormationTable{
		Name: VariantA,
		Slots: map[int][]string{
			7:  {"GOL", "ZAG", "LD", "LE", "MC", "MC", "ATA", "ATA"},
			8:  {"GOL", "ZAG", "LD", "LE", "MC", "MC", "PD/PE", "PD/PE", "ATA"},
			9:  {"GOL", "ZAG", "ZAG", "LD", "LE", "MC", "MC", "MC", "ATA", "ATA", "ATA"},
			10: {"GOL", "ZAG", "ZAG", "LD", "LE", "MC", "MC", "MC", "ATA", "ATA", "ATA"},
		},
		DisplayOrder: rankOf("GOL", "ZAG", "LD", "LE", "MC", "PD/PE", "ATA"),
	}
}

// TableB splits midfield into VOL and MEI.
func TableB() *FormationTable {
	return &FormationTable{
		Name: VariantB,
		Slots: map[int][]string{
			7:  {"GOL", "ZAG", "LD", "LE", "VOL", "MEI", "ATA", "ATA"},
			8:  {"GOL", "ZAG", "LD", "LE", "VOL", "MEI", "PD/PE", "PD/PE", "ATA"},
			9:  {"GOL", "ZAG", "ZAG", "LD", "LE", "VOL", "MEI", "PD/PE", "PD/PE", "ATA"},
			10: {"GOL", "ZAG", "ZAG", "LD", "LE", "VOL", "VOL", "MEI", "PD/PE", "PD/PE", "ATA"},
		},
		DisplayOrder: rankOf("GOL", "ZAG", "LD", "LE", "VOL", "MC", "MEI", "PD/PE", "ATA"),
	}
}

// TableByName returns one of the built-in tables.
func TableByName(name string) (*FormationTable, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", VariantA:
		return TableA(), nil
	case VariantB:
		return TableB(), nil
	default:
		return nil, fmt.Errorf("unknown formation variant: %q", name)
	}
}

func rankOf(positions ...string) map[string]int {
	ranks := make(map[string]int, len(positions))
	for i, p := range positions {
		ranks[p] = i + 1
	}
	return ranks
}

type tableFile struct {
	Name         string           `yaml:"name"`
	Slots        map[int][]string `yaml:"slots"`
	DisplayOrder []string         `yaml:"display_order"`
}

// ParseFormationTable decodes a YAML formation table. Every size from 7 to 10 must be present.
func ParseFormationTable(data []byte) (*FormationTable, error) {
	var raw tableFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing formation table: %w", err)
	}
	if raw.Name == "" {
		raw.Name = "custom"
	}
	for _, size := range formationSizes {
		slots := raw.Slots[size]
		if len(slots) == 0 {
			return nil, fmt.Errorf("formation table %q: missing slots for size %d", raw.Name, size)
		}
		for _, slot := range slots {
			if !models.IsKnownPosition(slot) {
				return nil, fmt.Errorf("formation table %q: unknown slot %q for size %d", raw.Name, slot, size)
			}
		}
	}
	if len(raw.DisplayOrder) == 0 {
		return nil, errors.New("formation table: display_order is required")
	}
	return &FormationTable{
		Name:         raw.Name,
		Slots:        raw.Slots,
		DisplayOrder: rankOf(raw.DisplayOrder...),
	}, nil
}

func LoadFormationTable(path string) (*FormationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading formation table %s: %w", path, err)
	}
	return ParseFormationTable(data)
}
