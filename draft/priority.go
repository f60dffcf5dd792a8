package draft

import (
	"cmp"

	"github.com/Dosada05/pelada/models"
)

// PriorityKey ranks a player for a slot. Fields are compared in order, higher first.
type PriorityKey struct {
	Primary   int
	Secondary int
	Skill     int
	Age       int
}

// Priority builds the ranking key of p for slot.
func Priority(slot string, p models.Player) PriorityKey {
	key := PriorityKey{Skill: p.Skill, Age: p.Age}
	if p.Position == slot {
		key.Primary = 1
	}
	if p.PlaysSecondary(slot) {
		key.Secondary = 1
	}
	return key
}

// ComparePriority returns -1, 0 or +1 like cmp.Compare.
func ComparePriority(a, b PriorityKey) int {
	if c := cmp.Compare(a.Primary, b.Primary); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Secondary, b.Secondary); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Skill, b.Skill); c != 0 {
		return c
	}
	return cmp.Compare(a.Age, b.Age)
}

// compareLeftover ignores position entirely.
func compareLeftover(a, b models.Player) int {
	if c := cmp.Compare(a.Skill, b.Skill); c != 0 {
		return c
	}
	return cmp.Compare(a.Age, b.Age)
}
