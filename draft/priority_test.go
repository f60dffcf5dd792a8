package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/pelada/models"
)

func TestPriority(t *testing.T) {
	p := models.Player{Name: "Bia", Position: "ATA", AlternativePosition: []string{"MC"}, Skill: 5, Age: 45}

	assert.Equal(t, PriorityKey{Primary: 1, Skill: 5, Age: 45}, Priority("ATA", p))
	assert.Equal(t, PriorityKey{Secondary: 1, Skill: 5, Age: 45}, Priority("MC", p))
	assert.Equal(t, PriorityKey{Skill: 5, Age: 45}, Priority("GOL", p))
}

func TestComparePriority(t *testing.T) {
	primaryWeak := Priority("ATA", models.Player{Position: "ATA", Skill: 2, Age: 20})
	secondaryStrong := Priority("ATA", models.Player{Position: "MC", AlternativePosition: []string{"ATA"}, Skill: 5, Age: 20})
	assert.Equal(t, 1, ComparePriority(primaryWeak, secondaryStrong), "primary match beats skill")

	secondarySkill3 := Priority("LE", models.Player{Position: "LD", AlternativePosition: []string{"LE"}, Skill: 3, Age: 50})
	secondarySkill5 := Priority("LE", models.Player{Position: "MC", AlternativePosition: []string{"LE"}, Skill: 5, Age: 22})
	assert.Equal(t, -1, ComparePriority(secondarySkill3, secondarySkill5), "higher skill wins among secondary matches")

	younger := Priority("LE", models.Player{Position: "LD", AlternativePosition: []string{"LE"}, Skill: 4, Age: 30})
	older := Priority("LE", models.Player{Position: "MC", AlternativePosition: []string{"LE"}, Skill: 4, Age: 45})
	assert.Equal(t, 1, ComparePriority(older, younger), "older player wins on equal skill")

	assert.Equal(t, 0, ComparePriority(younger, younger))

	noMatchStrong := Priority("GOL", models.Player{Position: "ATA", Skill: 5, Age: 60})
	secondaryWeak := Priority("GOL", models.Player{Position: "ZAG", AlternativePosition: []string{"GOL"}, Skill: 1, Age: 18})
	assert.Equal(t, -1, ComparePriority(noMatchStrong, secondaryWeak))
}

func TestPickBestTieBreakCascade(t *testing.T) {
	pool := []models.Player{
		{Name: "Skill3", Position: "LD", AlternativePosition: []string{"ATA"}, Skill: 3, Age: 40},
		{Name: "Skill5", Position: "MC", AlternativePosition: []string{"ATA"}, Skill: 5, Age: 20},
	}
	best, _ := pickBest("ATA", pool)
	assert.Equal(t, "Skill5", best.Name)

	pool = []models.Player{
		{Name: "Young", Position: "LD", AlternativePosition: []string{"ATA"}, Skill: 4, Age: 25},
		{Name: "Old", Position: "MC", AlternativePosition: []string{"ATA"}, Skill: 4, Age: 50},
	}
	best, _ = pickBest("ATA", pool)
	assert.Equal(t, "Old", best.Name)
}
