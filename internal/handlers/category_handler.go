package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/services"
)

type CategoryHandler struct {
	Service *services.CategoryService
	Logger  logging.Logger
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
