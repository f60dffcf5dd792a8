package draft

import (
	"fmt"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pelada/models"
)

var rosterPositions = []string{"GOL", "ZAG", "LD", "LE", "MC", "PD/PE", "ATA", "MC", "ZAG", "ATA"}

func testRoster(n int) []models.Player {
	players := make([]models.Player, 0, n)
	for i := 0; i < n; i++ {
		pos := rosterPositions[i%len(rosterPositions)]
		var alts []string
		if i%3 == 0 {
			alts = []string{"MC"}
		}
		players = append(players, models.Player{
			Name:                fmt.Sprintf("Player %02d", i),
			Position:            pos,
			AlternativePosition: alts,
			Skill:               2 + i%4,
			Age:                 20 + (i*7)%40,
		})
	}
	return players
}

func names(players []models.AssignedPlayer) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}

func TestFormationSize(t *testing.T) {
	tests := []struct {
		total   int
		want    int
		wantErr bool
	}{
		{total: 0, wantErr: true},
		{total: 15, wantErr: true},
		{total: 16, want: 7},
		{total: 17, want: 7},
		{total: 18, want: 8},
		{total: 19, want: 8},
		{total: 20, want: 9},
		{total: 21, want: 9},
		{total: 22, want: 10},
		{total: 40, want: 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d players", tt.total), func(t *testing.T) {
			got, err := FormationSize(tt.total)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInsufficientPlayers)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormationBoundariesSelectDifferentSlots(t *testing.T) {
	table := TableA()

	s17, size17, err := table.SlotsFor(17)
	require.NoError(t, err)
	s18, size18, err := table.SlotsFor(18)
	require.NoError(t, err)
	assert.NotEqual(t, size17, size18)
	assert.Len(t, s17, 8)
	assert.Len(t, s18, 9)

	_, size21, err := table.SlotsFor(21)
	require.NoError(t, err)
	_, size22, err := table.SlotsFor(22)
	require.NoError(t, err)
	assert.Equal(t, 9, size21)
	assert.Equal(t, 10, size22)
}

func TestTableBSlotCounts(t *testing.T) {
	table := TableB()
	assert.Len(t, table.Slots[7], 8)
	assert.Len(t, table.Slots[8], 9)
	assert.Len(t, table.Slots[9], 10)
	assert.Len(t, table.Slots[10], 11)
	assert.Less(t, table.Rank("VOL"), table.Rank("MEI"))
}

func TestAssignRejectsSmallRoster(t *testing.T) {
	_, err := New(TableA(), WithSeed(1)).Assign(testRoster(15))
	require.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestAssignMinimumRoster(t *testing.T) {
	res, err := New(TableA(), WithSeed(1)).Assign(testRoster(16))
	require.NoError(t, err)
	assert.Equal(t, 7, res.FormationSize)
	assert.Len(t, res.Team1, 8)
	assert.Len(t, res.Team2, 8)
}

func TestAssignConservesPlayersAndBalancesSize(t *testing.T) {
	for _, table := range []*FormationTable{TableA(), TableB()} {
		for n := 16; n <= 31; n++ {
			for seed := int64(1); seed <= 10; seed++ {
				roster := testRoster(n)
				res, err := New(table).AssignWithSeed(roster, seed)
				require.NoError(t, err)

				got := append(names(res.Team1), names(res.Team2)...)
				want := make([]string, 0, n)
				for _, p := range roster {
					want = append(want, p.Name)
				}
				sort.Strings(got)
				sort.Strings(want)
				require.Equal(t, want, got, "variant %s, %d players, seed %d", table.Name, n, seed)

				diff := len(res.Team1) - len(res.Team2)
				require.LessOrEqual(t, diff, 1)
				require.GreaterOrEqual(t, diff, -1)

				for _, p := range append(res.Team1, res.Team2...) {
					require.NotEmpty(t, p.AssignedPosition)
					require.NotNil(t, p.AlternativePosition)
				}
			}
		}
	}
}

func TestAssignDoesNotMutateInput(t *testing.T) {
	roster := testRoster(20)
	before := slices.Clone(roster)
	_, err := New(TableA(), WithSeed(3)).Assign(roster)
	require.NoError(t, err)
	assert.Equal(t, before, roster)
}

func TestAssignIsDeterministicForSeed(t *testing.T) {
	engine := New(TableA(), WithSeed(42))
	roster := testRoster(24)

	first, err := engine.Assign(roster)
	require.NoError(t, err)
	second, err := engine.Assign(roster)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(42), first.Seed)
}

func TestAssignLeftoversKeepOwnPosition(t *testing.T) {
	table := TableA()
	roster := testRoster(30)
	res, err := New(table, WithSeed(7)).Assign(roster)
	require.NoError(t, err)
	require.Equal(t, 10, res.FormationSize)

	slots := table.Slots[10]
	leftovers := 0
	for _, p := range append(res.Team1, res.Team2...) {
		if !slices.Contains(slots, p.AssignedPosition) {
			leftovers++
			assert.Equal(t, p.Position, p.AssignedPosition, "%s was placed in a slot it never matched", p.Name)
		}
	}
	// PD/PE is not a slot in the largest variant A formation, so every winger who
	// was left over shows up with their own position.
	assert.Positive(t, leftovers)
}

func TestAssignSortsTeamsForDisplay(t *testing.T) {
	table := TableA()
	res, err := New(table, WithSeed(11)).Assign(testRoster(27))
	require.NoError(t, err)

	for _, team := range [][]models.AssignedPlayer{res.Team1, res.Team2} {
		require.True(t, slices.IsSortedFunc(team, func(a, b models.AssignedPlayer) int {
			return table.Rank(a.AssignedPosition) - table.Rank(b.AssignedPosition)
		}))
		assert.Equal(t, "GOL", team[0].AssignedPosition)
	}
}

func TestAssignSurvivesPoolRunningDry(t *testing.T) {
	wide := &FormationTable{
		Name: "wide",
		Slots: map[int][]string{
			7: {"GOL", "ZAG", "ZAG", "LD", "LE", "MC", "MC", "MC", "PD/PE", "PD/PE", "ATA", "ATA"},
		},
		DisplayOrder: TableA().DisplayOrder,
	}
	res, err := New(wide, WithSeed(5)).Assign(testRoster(17))
	require.NoError(t, err)
	assert.Equal(t, 17, len(res.Team1)+len(res.Team2))
	assert.InDelta(t, len(res.Team1), len(res.Team2), 1)
}

func TestAssignMissingSizeInTable(t *testing.T) {
	partial := &FormationTable{Name: "partial", Slots: map[int][]string{7: {"GOL"}}}
	_, err := New(partial).Assign(testRoster(22))
	require.Error(t, err)
}

func TestPickBestPrefersPrimaryOverSkill(t *testing.T) {
	pool := []models.Player{
		{Name: "Backup", Position: "MC", AlternativePosition: []string{"ATA"}, Skill: 5, Age: 30},
		{Name: "Striker", Position: "ATA", Skill: 2, Age: 30},
	}
	best, rest := pickBest("ATA", pool)
	assert.Equal(t, "Striker", best.Name)
	require.Len(t, rest, 1)
	assert.Equal(t, "Backup", rest[0].Name)
}

func TestPickBestKeepsPoolOrderOnTies(t *testing.T) {
	pool := []models.Player{
		{Name: "First", Position: "MC", Skill: 3, Age: 30},
		{Name: "Second", Position: "MC", Skill: 3, Age: 30},
	}
	best, _ := pickBest("MC", pool)
	assert.Equal(t, "First", best.Name)
}

func TestDistributeLeftovers(t *testing.T) {
	team1 := []models.AssignedPlayer{{}, {}}
	team2 := []models.AssignedPlayer{{}, {}}
	pool := []models.Player{
		{Name: "Weak", Position: "ATA", Skill: 2, Age: 40},
		{Name: "Strong", Position: "ZAG", Skill: 5, Age: 25},
		{Name: "Veteran", Position: "MC", Skill: 2, Age: 60},
	}

	distributeLeftovers(pool, &team1, &team2)

	require.Len(t, team1, 4)
	require.Len(t, team2, 3)
	assert.Equal(t, "Strong", team1[2].Name)
	assert.Equal(t, "ZAG", team1[2].AssignedPosition)
	assert.Equal(t, "Veteran", team2[2].Name)
	assert.Equal(t, "Weak", team1[3].Name)
	assert.Equal(t, "ATA", team1[3].AssignedPosition)
}

func TestDistributeLeftoversEmptyPool(t *testing.T) {
	var team1, team2 []models.AssignedPlayer
	distributeLeftovers(nil, &team1, &team2)
	assert.Empty(t, team1)
	assert.Empty(t, team2)
}
