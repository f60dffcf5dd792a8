package services

import "github.com/Dosada05/pelada/models"

func alt(positions ...string) []string {
	if positions == nil {
		return []string{}
	}
	return positions
}

// DefaultRoster is written to an empty store the first time the roster is loaded.
func DefaultRoster() []models.Player {
	return []models.Player{
		{Name: "Plinio", Position: "LD", AlternativePosition: alt("MC", "LE"), Skill: 3, Age: 25},
		{Name: "Valdir", Position: "GOL", AlternativePosition: alt(), Skill: 4, Age: 40},
		{Name: "Edson", Position: "GOL", AlternativePosition: alt(), Skill: 4, Age: 62},
		{Name: "Bran", Position: "GOL", AlternativePosition: alt(), Skill: 3, Age: 25},
		{Name: "Zunino", Position: "ZAG", AlternativePosition: alt("LD", "LE"), Skill: 4, Age: 30},
		{Name: "Josce", Position: "ZAG", AlternativePosition: alt(), Skill: 4, Age: 27},
		{Name: "Eda", Position: "LE", AlternativePosition: alt("LD", "ZAG"), Skill: 3, Age: 50},
		{Name: "Dick", Position: "LE", AlternativePosition: alt("MC"), Skill: 4, Age: 45},
		{Name: "Delio", Position: "MC", AlternativePosition: alt(), Skill: 4, Age: 55},
		{Name: "Mauro", Position: "MC", AlternativePosition: alt("ATA"), Skill: 5, Age: 50},
		{Name: "Ilson", Position: "ATA", AlternativePosition: alt(), Skill: 5, Age: 35},
		{Name: "Bia", Position: "ATA", AlternativePosition: alt("MC"), Skill: 5, Age: 45},
		{Name: "Magrão", Position: "ATA", AlternativePosition: alt(), Skill: 5, Age: 55},
		{Name: "Gomes", Position: "PD/PE", AlternativePosition: alt(), Skill: 4, Age: 50},
		{Name: "Erick", Position: "LE", AlternativePosition: alt("PD/PE", "ATA"), Skill: 4, Age: 22},
		{Name: "Gerson 2", Position: "PD/PE", AlternativePosition: alt("LE", "LD"), Skill: 3, Age: 45},
		{Name: "Gerson", Position: "LD", AlternativePosition: alt("PD/PE"), Skill: 3, Age: 55},
		{Name: "Diomar", Position: "PD/PE", AlternativePosition: alt(), Skill: 2, Age: 60},
		{Name: "Matheus", Position: "PD/PE", AlternativePosition: alt("ATA"), Skill: 2, Age: 25},
		{Name: "Minga", Position: "LE", AlternativePosition: alt(), Skill: 3, Age: 72},
		{Name: "Xande", Position: "MC", AlternativePosition: alt("LE"), Skill: 4, Age: 40},
		{Name: "Amarildo", Position: "ATA", AlternativePosition: alt(), Skill: 3, Age: 50},
		{Name: "Aures", Position: "PD/PE", AlternativePosition: alt("LE"), Skill: 3, Age: 50},
		{Name: "Fininho", Position: "MC", AlternativePosition: alt("ATA"), Skill: 4, Age: 50},
		{Name: "Deba", Position: "MC", AlternativePosition: alt(), Skill: 4, Age: 30},
		{Name: "Gustavo", Position: "MC", AlternativePosition: alt("ATA"), Skill: 4, Age: 30},
		{Name: "Vânio", Position: "MC", AlternativePosition: alt("ATA"), Skill: 4, Age: 40},
		{Name: "Murilo", Position: "ATA", AlternativePosition: alt(), Skill: 2, Age: 45},
		{Name: "Ricardo", Position: "MC", AlternativePosition: alt("LD", "LE"), Skill: 4, Age: 35},
		{Name: "Tarcisio", Position: "ATA", AlternativePosition: alt(), Skill: 2, Age: 50},
		{Name: "Vilmar", Position: "ZAG", AlternativePosition: alt("LE"), Skill: 3, Age: 45},
	}
}
