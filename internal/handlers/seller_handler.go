package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/services"
)

type SellerHandler struct {
	Service *services.SellerService
	Logger  logging.Logger
}

// GigStats answers the seller dashboard for the caller.
func (h *SellerHandler) GigStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GigStats(r.Context(), IdentityFrom(r))
	if err != nil {
		writeServiceError(w, h.Logger, "gig stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GigsBySellerName writes null for an unknown seller.
func (h *SellerHandler) GigsBySellerName(w http.ResponseWriter, r *http.Request) {
	gigs, err := h.Service.GigsBySellerName(r.Context(), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "gigs by seller", err)
		return
	}
	writeJSON(w, http.StatusOK, gigs)
}

func (h *SellerHandler) GigsWithImages(w http.ResponseWriter, r *http.Request) {
	gigs, err := h.Service.GigsWithImages(r.Context(), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "gigs with images", err)
		return
	}
	writeJSON(w, http.StatusOK, gigs)
}

func (h *SellerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.Profile(r.Context(), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "seller profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
