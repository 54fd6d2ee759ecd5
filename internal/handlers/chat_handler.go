package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

type ChatHandler struct {
	Service *services.RecommendationService
	Logger  logging.Logger
}

// Chat answers POST /chat with recommendation cards for the conversation.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages are required", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Chat(r.Context(), req.Messages)
	if err != nil {
		writeServiceError(w, h.Logger, "chat", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Feed exposes the flattened catalog the agent sees.
func (h *ChatHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Service.AgentFeed(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "agent feed", err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}
