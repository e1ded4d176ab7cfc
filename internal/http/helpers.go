package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"financepro/internal/auth"
	"financepro/internal/backup"
	"financepro/internal/core"
	"financepro/internal/store"
)

// validationErrors are the record-level failures callers can fix.
var validationErrors = []error{
	core.ErrEmptyDescription,
	core.ErrInvalidValue,
	core.ErrInvalidMonth,
	core.ErrInvalidDueDay,
	core.ErrInvalidInstallments,
	core.ErrInvalidPriority,
	core.ErrInvalidType,
	core.ErrInvalidPercentage,
	core.ErrInvalidReminderDay,
	core.ErrInvalidThreshold,
	auth.ErrMissingField,
	backup.ErrInvalidBackup,
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrEmailNotFound),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrIdentityDecode):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrDuplicateEmail):
		return http.StatusConflict
	}
	for _, ve := range validationErrors {
		if errors.Is(err, ve) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// readJSON decodes the request body into v, rejecting unknown fields.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
