package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/studiodesk/internal/scope"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// isNotFound reports whether err is one of the store's not-found sentinels.
func isNotFound(err error) bool {
	for _, sentinel := range []error{
		store.ErrTaskNotFound,
		store.ErrInvoiceNotFound,
		store.ErrPlanNotFound,
		store.ErrNotificationNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeNotFound emits the uniform 404 body. Scope misses and true absence
// both land here with an identical response, so a caller can't confirm
// whether a resource exists.
func writeNotFound(w http.ResponseWriter, resource string) {
	writeError(w, http.StatusNotFound, resource+" not found")
}

// writeGuardError maps errors from guarded reads onto the boundary
// contract: access denials become the resource's 404, anything else is a
// generic 500 with the detail kept server-side.
func writeGuardError(w http.ResponseWriter, err error, resource string) {
	if errors.Is(err, scope.ErrAccessDenied) {
		writeNotFound(w, resource)
		return
	}
	writeServerError(w, err)
}

func writeServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Request failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
