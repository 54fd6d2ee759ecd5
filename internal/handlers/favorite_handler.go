package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
	Logger  logging.Logger
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	gigID, ok := intParam(r, "gig_id")
	if !ok {
		http.Error(w, "Invalid gig_id", http.StatusBadRequest)
		return
	}
	fav, err := h.Service.Add(r.Context(), IdentityFrom(r), gigID)
	if err != nil {
		writeServiceError(w, h.Logger, "add favorite", err)
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	gigID, ok := intParam(r, "gig_id")
	if !ok {
		http.Error(w, "Invalid gig_id", http.StatusBadRequest)
		return
	}
	if err := h.Service.Remove(r.Context(), IdentityFrom(r), gigID); err != nil {
		writeServiceError(w, h.Logger, "remove favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
