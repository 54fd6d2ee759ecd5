package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
	Logger  logging.Logger
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	gigID, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid gig id", http.StatusBadRequest)
		return
	}
	var req models.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	review, err := h.Service.CreateReview(r.Context(), IdentityFrom(r), gigID, req)
	if err != nil {
		writeServiceError(w, h.Logger, "create review", err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	gigID, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid gig id", http.StatusBadRequest)
		return
	}
	summary, err := h.Service.Summary(r.Context(), gigID)
	if err != nil {
		writeServiceError(w, h.Logger, "review summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
