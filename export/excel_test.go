package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pelada/models"
)

func testLineup() *models.Lineup {
	return &models.Lineup{
		Team1: []models.AssignedPlayer{
			{Player: models.Player{Name: "Valdir", Position: "GOL", Skill: 4, Age: 40}, AssignedPosition: "GOL"},
			{Player: models.Player{Name: "Ilson", Position: "ATA", Skill: 5, Age: 35, IsGuest: true}, AssignedPosition: "ATA"},
		},
		Team2: []models.AssignedPlayer{
			{Player: models.Player{Name: "Edson", Position: "GOL", Skill: 4, Age: 62}, AssignedPosition: "GOL"},
			{Player: models.Player{Name: "Erick", Position: "LE", Skill: 4, Age: 22}, AssignedPosition: "ATA"},
		},
		FormationSize: 7,
		Variant:       "a",
		Seed:          42,
		GeneratedAt:   time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC),
	}
}

func TestLineupWorkbook(t *testing.T) {
	f, err := Lineup(testLineup())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTeam1, SheetTeam2, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetTeam1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Posição", rows[0][0])
	assert.Equal(t, []string{"GOL", "Valdir", "GOL", "4", "40", "Não"}, rows[1])
	assert.Equal(t, []string{"ATA", "Ilson", "ATA", "5", "35", "Sim"}, rows[2])

	name, err := f.GetCellValue(SheetTeam2, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Erick", name)
	assigned, err := f.GetCellValue(SheetTeam2, "A3")
	require.NoError(t, err)
	assert.Equal(t, "ATA", assigned)

	total, err := f.GetCellValue(SheetTeam1, "D5")
	require.NoError(t, err)
	assert.Equal(t, "9", total)

	seed, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "42", seed)
}

func TestLineupRequiresLineup(t *testing.T) {
	_, err := Lineup(nil)
	require.Error(t, err)
}
