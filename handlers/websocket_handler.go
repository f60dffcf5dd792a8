package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/Dosada05/pelada/live"
)

type WebSocketHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; "*" allows any origin.
func NewWebSocketHandler(hub *live.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	allowAll := len(allowedOrigins) == 0 || lo.Contains(allowedOrigins, "*")

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || lo.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// ServeWs подключает клиента к живой ленте событий (/ws).
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже отправил клиенту HTTP-ошибку
		h.logger.Warn("Failed to upgrade websocket connection", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	if !h.hub.Register(live.NewClient(h.hub, conn)) {
		h.logger.Warn("Websocket hub is stopped, connection dropped", "remote_addr", r.RemoteAddr)
		return
	}
	h.logger.Debug("Websocket client connected", "remote_addr", r.RemoteAddr)
}
