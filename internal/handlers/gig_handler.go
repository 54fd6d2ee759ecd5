package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"skillsyncBack/internal/logging"
	"skillsyncBack/internal/models"
	"skillsyncBack/internal/services"
)

const maxUploadBytes = 32 << 20

type GigHandler struct {
	Service *services.GigService
	Logger  logging.Logger
}

// ListGigs answers GET /gigs?search=&favorites=&filter=.
func (h *GigHandler) ListGigs(w http.ResponseWriter, r *http.Request) {
	params := models.GigListParams{
		Search:    strings.TrimSpace(r.URL.Query().Get("search")),
		Favorites: r.URL.Query().Get("favorites"),
		Filter:    strings.TrimSpace(r.URL.Query().Get("filter")),
	}
	gigs, err := h.Service.ListGigs(r.Context(), IdentityFrom(r), params)
	if err != nil {
		writeServiceError(w, h.Logger, "list gigs", err)
		return
	}
	writeJSON(w, http.StatusOK, gigs)
}

func (h *GigHandler) GetGig(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid gig id", http.StatusBadRequest)
		return
	}
	detail, err := h.Service.GetGigDetail(r.Context(), IdentityFrom(r), id)
	if err != nil {
		writeServiceError(w, h.Logger, "get gig", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *GigHandler) CreateGig(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGigRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	gig, err := h.Service.CreateGig(r.Context(), IdentityFrom(r), req)
	if err != nil {
		writeServiceError(w, h.Logger, "create gig", err)
		return
	}
	writeJSON(w, http.StatusCreated, gig)
}

func (h *GigHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *GigHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *GigHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid gig id", http.StatusBadRequest)
		return
	}
	if err := h.Service.SetPublished(r.Context(), IdentityFrom(r), id, published); err != nil {
		writeServiceError(w, h.Logger, "set published", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GigHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid gig id", http.StatusBadRequest)
		return
	}
	var req models.CreateOfferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	offer, err := h.Service.CreateOffer(r.Context(), IdentityFrom(r), id, req)
	if err != nil {
		writeServiceError(w, h.Logger, "create offer", err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// UploadMedia accepts a multipart "file" field and stores it in S3.
func (h *GigHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid gig id", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	media, err := h.Service.UploadMedia(r.Context(), IdentityFrom(r), id, filepath.Base(header.Filename), contentType, data)
	if err != nil {
		writeServiceError(w, h.Logger, "upload media", err)
		return
	}
	writeJSON(w, http.StatusCreated, media)
}
