package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/pelada/models"
	"github.com/Dosada05/pelada/services"
)

type LineupHandler struct {
	lineupService services.LineupService
}

func NewLineupHandler(ls services.LineupService) *LineupHandler {
	return &LineupHandler{
		lineupService: ls,
	}
}

type lineupResponse struct {
	Team1         []models.AssignedPlayer `json:"team1"`
	Team2         []models.AssignedPlayer `json:"team2"`
	FormationSize int                     `json:"formation_size"`
	Seed          int64                   `json:"seed"`
}

// Generate handles POST /generate. The body is the list of players present today.
func (h *LineupHandler) Generate(w http.ResponseWriter, r *http.Request) {
	lineup, ok := h.generate(w, r)
	if !ok {
		return
	}

	resp := lineupResponse{
		Team1:         lineup.Team1,
		Team2:         lineup.Team2,
		FormationSize: lineup.FormationSize,
		Seed:          lineup.Seed,
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Export handles POST /generate/export and answers with the xlsx workbook.
func (h *LineupHandler) Export(w http.ResponseWriter, r *http.Request) {
	lineup, ok := h.generate(w, r)
	if !ok {
		return
	}

	res, err := h.lineupService.Export(r.Context(), lineup)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("X-Lineup-Seed", strconv.FormatInt(lineup.Seed, 10))
	if res.URL != "" {
		w.Header().Set("X-Lineup-URL", res.URL)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}

func (h *LineupHandler) generate(w http.ResponseWriter, r *http.Request) (*models.Lineup, bool) {
	seed, err := parseSeed(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return nil, false
	}

	// Состав передается без изменений, как его прислал клиент.
	var players []models.Player
	if err := readJSON(w, r, &players); err != nil {
		badRequestResponse(w, r, err)
		return nil, false
	}
	for i := range players {
		players[i].Normalize()
	}

	lineup, err := h.lineupService.Generate(r.Context(), services.GenerateLineupInput{
		Players: players,
		Seed:    seed,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	return lineup, true
}

func parseSeed(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: must be an integer", raw)
	}
	return &seed, nil
}
