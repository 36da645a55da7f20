package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/owakeel/golf-music-backend/internal/database"
	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/service"
)

// writeServiceError is the single place where service and store failures
// become HTTP responses. Validation, conflict and credentials errors carry
// their own messages and field lists; store-normalized errors (duplicate,
// schema) map to 400; sentinels map to their status; everything else falls
// through as a 500 with the resource-specific fallback message, the cause
// logged and only exposed outside production.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error, fallback string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message, validationErr.Fields, nil)
		return
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		writeError(w, http.StatusBadRequest, conflictErr.Message, conflictErr.Fields, nil)
		return
	}

	var credentialsErr *service.CredentialsError
	if errors.As(err, &credentialsErr) {
		writeError(w, http.StatusUnauthorized, credentialsErr.Error(), []model.FieldError{
			{Field: credentialsErr.Field, Message: credentialsErr.FieldMessage},
		}, nil)
		return
	}

	var duplicateErr *database.DuplicateError
	if errors.As(err, &duplicateErr) {
		writeError(w, http.StatusBadRequest, duplicateErr.Error(), nil, nil)
		return
	}

	var schemaErr *database.SchemaError
	if errors.As(err, &schemaErr) {
		writeError(w, http.StatusBadRequest, "Validation failed", []model.FieldError{
			{Field: schemaErr.Field, Message: schemaErr.Message},
		}, nil)
		return
	}

	switch {
	case errors.Is(err, service.ErrCastNotFound),
		errors.Is(err, service.ErrMerchNotFound),
		errors.Is(err, service.ErrWaveNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error(), nil, nil)
	case errors.Is(err, service.ErrEmailDelivery):
		writeError(w, http.StatusInternalServerError, err.Error(), nil, nil)
	default:
		logger.Error().Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, fallback, nil, err)
	}
}
