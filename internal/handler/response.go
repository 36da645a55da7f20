// Package handler contains the HTTP handlers and the single mapping layer
// that turns service errors into the API's uniform response envelope.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/owakeel/golf-music-backend/internal/model"
)

// exposeDetail controls whether error responses carry the raw cause. It is
// enabled outside production by SetExposeErrorDetail at startup.
var exposeDetail bool

// SetExposeErrorDetail toggles raw diagnostics in error responses.
func SetExposeErrorDetail(enabled bool) {
	exposeDetail = enabled
}

func writeJSON(w http.ResponseWriter, status int, body model.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, model.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string, fields []model.FieldError, cause error) {
	resp := model.Response{
		Success: false,
		Message: message,
		Errors:  fields,
	}
	if exposeDetail && cause != nil {
		resp.Detail = cause.Error()
	}
	writeJSON(w, status, resp)
}

// decodeJSON parses the request body into dest. A malformed body is reported
// as a 400 in the uniform envelope; the caller should return immediately.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil, err)
		return false
	}
	return true
}
