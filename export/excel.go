package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/pelada/models"
)

const (
	SheetTeam1   = "Time 1"
	SheetTeam2   = "Time 2"
	SheetSummary = "Resumo"
)

var teamHeader = []interface{}{"Posição", "Nome", "Posição original", "Skill", "Idade", "Convidado"}

// Lineup builds a workbook with one sheet per team and a summary sheet.
func Lineup(lineup *models.Lineup) (*excelize.File, error) {
	if lineup == nil {
		return nil, fmt.Errorf("lineup is required")
	}

	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeTeamSheet(f, SheetTeam1, lineup.Team1, headerStyle); err != nil {
		return nil, err
	}
	if err := writeTeamSheet(f, SheetTeam2, lineup.Team2, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, lineup, headerStyle); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(SheetTeam1); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeTeamSheet(f *excelize.File, sheet string, team []models.AssignedPlayer, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &teamHeader); err != nil {
		return fmt.Errorf("writing header on %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("styling header on %s: %w", sheet, err)
	}

	for i, p := range team {
		guest := "Não"
		if p.IsGuest {
			guest = "Sim"
		}
		row := []interface{}{p.AssignedPosition, p.Name, p.Position, p.Skill, p.Age, guest}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s on %s: %w", p.Name, sheet, err)
		}
	}

	// Итоговая строка под составом.
	totalRow := len(team) + 3
	skill := totalSkill(team)
	avg := 0.0
	if len(team) > 0 {
		avg = float64(skill) / float64(len(team))
	}
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	summary := []interface{}{"Total", fmt.Sprintf("%d jogadores", len(team)), "", skill, fmt.Sprintf("média %.2f", avg)}
	if err := f.SetSheetRow(sheet, cell, &summary); err != nil {
		return fmt.Errorf("writing totals on %s: %w", sheet, err)
	}

	if err := f.SetColWidth(sheet, "B", "B", 20); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "C", 16)
}

func writeSummarySheet(f *excelize.File, lineup *models.Lineup, headerStyle int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("creating sheet %s: %w", SheetSummary, err)
	}
	rows := [][]interface{}{
		{"Campo", "Valor"},
		{"Gerado em", lineup.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Formação", lineup.FormationSize},
		{"Variante", lineup.Variant},
		{"Semente", fmt.Sprintf("%d", lineup.Seed)},
		{"Jogadores no Time 1", len(lineup.Team1)},
		{"Jogadores no Time 2", len(lineup.Team2)},
		{"Skill total Time 1", totalSkill(lineup.Team1)},
		{"Skill total Time 2", totalSkill(lineup.Team2)},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 22)
}

func totalSkill(team []models.AssignedPlayer) int {
	total := 0
	for _, p := range team {
		total += p.Skill
	}
	return total
}
