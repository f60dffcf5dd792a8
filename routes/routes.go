package routes

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/pelada/handlers"
	"github.com/Dosada05/pelada/metrics"
	"github.com/Dosada05/pelada/middleware"
)

const requestTimeout = 30 * time.Second

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// Recorder enables /metrics when set.
	Recorder *metrics.Recorder
}

func SetupRoutes(
	router *chi.Mux,
	opts Options,
	systemHandler *handlers.SystemHandler,
	playerHandler *handlers.PlayerHandler,
	lineupHandler *handlers.LineupHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger, httpRecorder(opts.Recorder)))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Lineup-URL", "X-Lineup-Seed"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/", systemHandler.Index)
	router.Get("/favicon.ico", systemHandler.Favicon)
	router.Get("/healthz", systemHandler.Health)
	router.Handle("/static/*", systemHandler.Static())

	// /ws держит соединение открытым, поэтому без таймаута
	router.Get("/ws", webSocketHandler.ServeWs)

	if opts.Recorder != nil {
		router.Handle("/metrics", opts.Recorder.Handler())
	}

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.ListPlayers)
			r.Post("/", playerHandler.CreatePlayer)
			r.Get("/{name}", playerHandler.GetPlayer)
			r.Put("/{name}", playerHandler.ReplacePlayer)
		})
		r.Post("/update_player", playerHandler.UpdatePlayer)

		r.Post("/generate", lineupHandler.Generate)
		r.Post("/generate/export", lineupHandler.Export)
	})
}

// httpRecorder keeps a nil *metrics.Recorder from becoming a non-nil interface.
func httpRecorder(rec *metrics.Recorder) middleware.HTTPRecorder {
	if rec == nil {
		return nil
	}
	return rec
}
