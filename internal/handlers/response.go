package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

const maxBodyBytes = 1 << 20

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrInvalidSignature, http.StatusBadRequest},
	{models.ErrInvalidInput, http.StatusBadRequest},
	{models.ErrInvalidScore, http.StatusBadRequest},
	{models.ErrSelfConversation, http.StatusBadRequest},
	{models.ErrUnauthorized, http.StatusUnauthorized},
	{models.ErrCouldNotAuth, http.StatusUnauthorized},
	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrOwnGigReview, http.StatusForbidden},
	{models.ErrUserNotFound, http.StatusNotFound},
	{models.ErrSellerNotFound, http.StatusNotFound},
	{models.ErrGigNotFound, http.StatusNotFound},
	{models.ErrOfferNotFound, http.StatusNotFound},
	{models.ErrImageNotFound, http.StatusNotFound},
	{models.ErrConversationNotFound, http.StatusNotFound},
	{models.ErrNotFavorited, http.StatusNotFound},
	{models.ErrNoRecord, http.StatusNotFound},
	{models.ErrAlreadyFavorited, http.StatusConflict},
	{models.ErrAlreadyReviewed, http.StatusConflict},
	{models.ErrDuplicateUsername, http.StatusConflict},
	{models.ErrStripeSession, http.StatusBadGateway},
	{models.ErrPaymentsDisabled, http.StatusServiceUnavailable},
	{models.ErrStorageDisabled, http.StatusServiceUnavailable},
	{models.ErrAgentDisabled, http.StatusServiceUnavailable},
}

// statusFor maps a service error to its HTTP status, 500 when unknown.
func statusFor(err error) (int, error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err
		}
	}
	return http.StatusInternalServerError, nil
}

// writeServiceError answers with the status for err. Client errors carry the
// error text; server errors are logged and answered with a generic body.
func writeServiceError(w http.ResponseWriter, log logging.Logger, op string, err error) {
	status, sentinel := statusFor(err)
	switch {
	case status < http.StatusInternalServerError:
		http.Error(w, err.Error(), status)
	case sentinel != nil:
		loggerOrNop(log).Errorf("%s: %v", op, err)
		http.Error(w, sentinel.Error(), status)
	default:
		loggerOrNop(log).Errorf("%s: %v", op, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func loggerOrNop(l logging.Logger) logging.Logger {
	if l == nil {
		return logging.Nop()
	}
	return l
}
