package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

type SystemHandler struct {
	staticDir string
}

func NewSystemHandler(staticDir string) *SystemHandler {
	return &SystemHandler{staticDir: staticDir}
}

// Index serves the roster UI from the static directory.
func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		notFoundResponse(w, r)
		return
	}
	http.ServeFile(w, r, index)
}

// Static returns a file server for /static/*.
func (h *SystemHandler) Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir)))
}

func (h *SystemHandler) Favicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
