package models

import (
	"time"

	"github.com/samber/lo"
)

// Коды позиций, используемые в составе и в таблицах формаций.
const (
	PositionGoalkeeper   = "GOL"
	PositionCenterBack   = "ZAG"
	PositionRightBack    = "LD"
	PositionLeftBack     = "LE"
	PositionDefensiveMid = "VOL"
	PositionMidfielder   = "MC"
	PositionAttackingMid = "MEI"
	PositionWinger       = "PD/PE"
	PositionStriker      = "ATA"
)

var KnownPositions = []string{
	PositionGoalkeeper,
	PositionCenterBack,
	PositionRightBack,
	PositionLeftBack,
	PositionDefensiveMid,
	PositionMidfielder,
	PositionAttackingMid,
	PositionWinger,
	PositionStriker,
}

func IsKnownPosition(code string) bool {
	return lo.Contains(KnownPositions, code)
}

// Player is a roster entry. Validation tags apply to stored players only;
// a draw accepts any values.
type Player struct {
	Name                string   `json:"name" db:"name" validate:"required,max=100"`
	Position            string   `json:"position" db:"position" validate:"required,position"`
	AlternativePosition []string `json:"alternative_position" db:"alternative_position" validate:"dive,position"`
	Skill               int      `json:"skill" db:"skill"`
	Age                 int      `json:"age" db:"age"`
	IsGuest             bool     `json:"is_guest" db:"is_guest"`
}

// PlaysSecondary reports whether slot is one of the player's alternative positions.
func (p Player) PlaysSecondary(slot string) bool {
	return lo.Contains(p.AlternativePosition, slot)
}

// Normalize гарантирует, что alternative_position никогда не сериализуется как null.
func (p *Player) Normalize() {
	if p.AlternativePosition == nil {
		p.AlternativePosition = []string{}
	}
}

type AssignedPlayer struct {
	Player
	AssignedPosition string `json:"assigned_position"`
}

type Lineup struct {
	Team1         []AssignedPlayer `json:"team1"`
	Team2         []AssignedPlayer `json:"team2"`
	FormationSize int              `json:"formation_size"`
	Variant       string           `json:"variant"`
	Seed          int64            `json:"seed"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// Size returns the total number of players across both teams.
func (l *Lineup) Size() int {
	return len(l.Team1) + len(l.Team2)
}
