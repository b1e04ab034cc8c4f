// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/spiritx-ai/cricket-engine/cmd/cricket-api/handlers"
	"github.com/spiritx-ai/cricket-engine/cmd/cricket-api/middleware"
	"github.com/spiritx-ai/cricket-engine/internal/config"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"cricket-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := app.DB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ready"}`))
	})

	chatbotHandler := handlers.NewChatbotHandler(logger, app.Router, app.Pipeline)

	r.Route("/chatbot", func(r chi.Router) {
		r.Get("/", chatbotHandler.Home)
		r.Get("/query", chatbotHandler.Query)
		r.Get("/query/", chatbotHandler.Query)
		r.Post("/api/update-player-data", chatbotHandler.UpdatePlayerData)
	})

	return r
}
