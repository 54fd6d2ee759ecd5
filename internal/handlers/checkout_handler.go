package handlers

import (
	"io"
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

const maxWebhookBytes = 64 << 10

type CheckoutHandler struct {
	Service *services.CheckoutService
	Logger  logging.Logger
}

// Checkout returns the Stripe Checkout URL the client redirects to.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OfferID <= 0 {
		http.Error(w, "offerId is required", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Checkout(r.Context(), IdentityFrom(r), req.OfferID)
	if err != nil {
		writeServiceError(w, h.Logger, "checkout", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CheckoutHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if err := h.Service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		writeServiceError(w, h.Logger, "stripe webhook", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
