package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

type ConversationHandler struct {
	Service *services.ConversationService
	Logger  logging.Logger
}

func (h *ConversationHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	conv, err := h.Service.GetOrCreate(r.Context(), IdentityFrom(r), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "get or create conversation", err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Get(r.Context(), IdentityFrom(r), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "get conversation", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context(), IdentityFrom(r))
	if err != nil {
		writeServiceError(w, h.Logger, "list conversations", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid conversation id", http.StatusBadRequest)
		return
	}
	var req models.SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := h.Service.Send(r.Context(), IdentityFrom(r), id, req.Text)
	if err != nil {
		writeServiceError(w, h.Logger, "send message", err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
