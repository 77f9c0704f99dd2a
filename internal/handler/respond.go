package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/routinely/routinely/internal/model"
	"github.com/routinely/routinely/internal/repository"
	"github.com/routinely/routinely/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		err := json.NewEncoder(w).Encode(v)
		if err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the error taxonomy onto status codes:
// validation errors are the caller's fault, missing rows are 404, and
// integrity or storage errors are server-side failures.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound),
		errors.Is(err, repository.ErrGoalNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGoalExists):
		respondError(w, http.StatusConflict, err.Error())
	case isValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrGoalCorrupted):
		slog.Error("goal integrity failure", "error", err)
		respondError(w, http.StatusInternalServerError, "goal data is corrupted")
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, model.ErrNoDayTargets) ||
		errors.Is(err, model.ErrDuplicateDayOfWeek) ||
		errors.Is(err, model.ErrInvalidDayOfWeek) ||
		errors.Is(err, model.ErrNonPositiveInterval) ||
		errors.Is(err, model.ErrMissingTarget) ||
		errors.Is(err, model.ErrVariantMismatch)
}
