package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/service"
)

// MerchHandler serves the merchandise endpoints.
type MerchHandler struct {
	service *service.MerchService
	logger  zerolog.Logger
}

// NewMerchHandler creates a new merch handler.
func NewMerchHandler(svc *service.MerchService, logger zerolog.Logger) *MerchHandler {
	return &MerchHandler{service: svc, logger: logger}
}

// List handles GET /merch (public). Unlike casts and waves, merch returns
// the records as a bare array plus a count.
func (h *MerchHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while fetching merch")
		return
	}

	count := len(items)
	writeJSON(w, http.StatusOK, model.Response{
		Success: true,
		Count:   &count,
		Data:    items,
	})
}

// Create handles POST /merch (admin).
func (h *MerchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateMerchInput
	if !decodeJSON(w, r, &in) {
		return
	}

	item, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while creating merch item")
		return
	}

	writeSuccess(w, http.StatusCreated, "Merch item created successfully!", item)
}

// Update handles PUT /merch/{id} (admin).
func (h *MerchHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateMerchInput
	if !decodeJSON(w, r, &in) {
		return
	}

	item, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Server error while updating merch item")
		return
	}

	writeSuccess(w, http.StatusOK, "Merch item updated successfully", item)
}

// Delete handles DELETE /merch/{id} (admin).
func (h *MerchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err, "Server error while deleting merch item")
		return
	}

	writeSuccess(w, http.StatusOK, "Merch item deleted successfully", nil)
}
