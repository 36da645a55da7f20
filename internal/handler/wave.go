package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/owakeel/golf-music-backend/internal/service"
)

// WaveHandler serves the open-mic video endpoints.
type WaveHandler struct {
	service *service.WaveService
	logger  zerolog.Logger
}

// NewWaveHandler creates a new wave handler.
func NewWaveHandler(svc *service.WaveService, logger zerolog.Logger) *WaveHandler {
	return &WaveHandler{service: svc, logger: logger}
}

// List handles GET /waves (public).
func (h *WaveHandler) List(w http.ResponseWriter, r *http.Request) {
	waves, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while fetching waves")
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"waves": waves})
}

// Create handles POST /waves (admin).
func (h *WaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateWaveInput
	if !decodeJSON(w, r, &in) {
		return
	}

	wave, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while creating wave")
		return
	}

	writeSuccess(w, http.StatusCreated, "Open Mic added successfully!", map[string]interface{}{"wave": wave})
}

// Update handles PUT /waves/{id} (admin).
func (h *WaveHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateWaveInput
	if !decodeJSON(w, r, &in) {
		return
	}

	wave, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while updating wave")
		return
	}

	writeSuccess(w, http.StatusOK, "Open Mic updated successfully!", map[string]interface{}{"wave": wave})
}

// Delete handles DELETE /waves/{id} (admin).
func (h *WaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err, "Server error while deleting wave")
		return
	}

	writeSuccess(w, http.StatusOK, "Open Mic deleted successfully!", nil)
}
