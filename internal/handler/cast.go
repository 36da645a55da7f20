package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/owakeel/golf-music-backend/internal/service"
)

// CastHandler serves the podcast-episode endpoints.
type CastHandler struct {
	service *service.CastService
	logger  zerolog.Logger
}

// NewCastHandler creates a new cast handler.
func NewCastHandler(svc *service.CastService, logger zerolog.Logger) *CastHandler {
	return &CastHandler{service: svc, logger: logger}
}

// List handles GET /casts (public).
func (h *CastHandler) List(w http.ResponseWriter, r *http.Request) {
	casts, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while fetching casts")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"casts": casts})
}

// Create handles POST /casts (admin).
func (h *CastHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCastInput
	if !decodeJSON(w, r, &in) {
		return
	}

	cast, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while creating podcast")
		return
	}

	writeSuccess(w, http.StatusCreated, "Podcast added successfully!", map[string]interface{}{"cast": cast})
}

// Update handles PUT /casts/{id} (admin).
func (h *CastHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateCastInput
	if !decodeJSON(w, r, &in) {
		return
	}

	cast, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while updating podcast")
		return
	}

	writeSuccess(w, http.StatusOK, "Podcast updated successfully!", map[string]interface{}{"cast": cast})
}

// Delete handles DELETE /casts/{id} (admin).
func (h *CastHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err, "Server error while deleting podcast")
		return
	}

	writeSuccess(w, http.StatusOK, "Podcast deleted successfully!", nil)
}
