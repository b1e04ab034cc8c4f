// Package handlers provides HTTP handlers for the cricket engine API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/spiritx-ai/cricket-engine/internal/ingest"
	"github.com/spiritx-ai/cricket-engine/internal/observability"
	"github.com/spiritx-ai/cricket-engine/internal/retrieval"
)

// ChatbotHandler handles chatbot queries and player data updates.
type ChatbotHandler struct {
	logger   *observability.Logger
	router   *retrieval.Router
	pipeline *ingest.Pipeline
}

// NewChatbotHandler creates a new chatbot handler.
func NewChatbotHandler(logger *observability.Logger, router *retrieval.Router, pipeline *ingest.Pipeline) *ChatbotHandler {
	return &ChatbotHandler{
		logger:   logger,
		router:   router,
		pipeline: pipeline,
	}
}

type queryResponse struct {
	Response string `json:"response"`
}

type updateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Home handles GET /chatbot/.
func (h *ChatbotHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"message": "Cricket Chatbot is Running!",
	})
}

// Query handles GET /chatbot/query?query=...
// The router maps every failure to a user-visible message, so this endpoint
// always answers 200 with a response string.
func (h *ChatbotHandler) Query(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	response := h.router.Answer(r.Context(), query)
	h.writeJSON(w, http.StatusOK, queryResponse{Response: response})
}

// UpdatePlayerData handles POST /chatbot/api/update-player-data. The status
// code is always 200; clients read the success flag, matching what the
// upstream tournament backend expects.
func (h *ChatbotHandler) UpdatePlayerData(w http.ResponseWriter, r *http.Request) {
	var update ingest.PlayerUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if errors.Is(err, io.EOF) {
			h.writeJSON(w, http.StatusOK, updateResponse{Success: false, Message: "No data provided"})
			return
		}
		h.writeJSON(w, http.StatusOK, updateResponse{Success: false, Message: "Invalid request body"})
		return
	}

	res, err := h.pipeline.Apply(r.Context(), update)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to apply player update")
		h.writeJSON(w, http.StatusOK, updateResponse{Success: false, Message: "Failed to update player data"})
		return
	}

	h.logger.Info().
		Str("event_id", res.EventID.String()).
		Int("upserted", res.Upserted).
		Int("deleted", res.Deleted).
		Msg("Player data updated")
	h.writeJSON(w, http.StatusOK, updateResponse{Success: true, Message: "Player data updated in RAG database successfully"})
}

func (h *ChatbotHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
