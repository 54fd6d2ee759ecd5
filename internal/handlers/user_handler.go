package handlers

import (
	"net/http"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
	Logger  logging.Logger
}

// Store upserts the caller from the identity token.
func (h *UserHandler) Store(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Store(r.Context(), IdentityFrom(r))
	if err != nil {
		writeServiceError(w, h.Logger, "store user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetByUsername(r.Context(), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Languages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.Service.Languages(r.Context(), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "user languages", err)
		return
	}
	if langs == nil {
		langs = []string{}
	}
	writeJSON(w, http.StatusOK, langs)
}

func (h *UserHandler) Country(w http.ResponseWriter, r *http.Request) {
	country, err := h.Service.Country(r.Context(), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "user country", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"country": country})
}

func (h *UserHandler) Skills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.Service.Skills(r.Context(), IdentityFrom(r), getParam(r, "username"))
	if err != nil {
		writeServiceError(w, h.Logger, "user skills", err)
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *UserHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceToken
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.RegisterDevice(r.Context(), IdentityFrom(r), req.Token); err != nil {
		writeServiceError(w, h.Logger, "register device", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
