package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/joestump/taggable/internal/store"
	"github.com/joestump/taggable/internal/taggable"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStoreError maps engine and storage errors to responses. Unexpected errors are logged
// and reported as internal errors.
func writeStoreError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "not_found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "tags were changed concurrently, retry", "conflict")
	case errors.Is(err, taggable.ErrUnknownMetadataField):
		writeError(w, http.StatusBadRequest, err.Error(), "bad_request")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error", "internal_error")
	}
}
