package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/logger"
	"github.com/sbilibin2017/syncify/internal/models"
)

const internalServerError = "Internal server error"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// writeError maps err onto the error taxonomy. Unclassified errors are
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msg)
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrValidation):
		writeMessage(w, http.StatusBadRequest, msg)
	case errors.Is(err, apperrors.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, msg)
	case errors.Is(err, apperrors.ErrUpstream):
		logger.Log.Errorw("upstream failure", "err", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeMessage(w, http.StatusInternalServerError, internalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
