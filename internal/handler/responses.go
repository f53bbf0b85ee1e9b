package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists the fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so an encoding failure can still be a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, LogFieldError, err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, LogFieldError, err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to a status and user message.
// Client mistakes are logged at warn, everything else at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, LogFieldAction, action, LogFieldError, err)
	} else {
		log.Warn(LogMsgRequestRejected, LogFieldAction, action, LogFieldStatus, status, LogFieldError, err)
	}
	respondError(w, status, msg)
}

// mapServiceError converts domain errors to HTTP status codes and messages
// users can act upon
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrUnknownBuilding):
		return http.StatusNotFound, ErrMsgUnknownBuildingError
	case errors.Is(err, domain.ErrInventoryEmpty):
		return http.StatusConflict, ErrMsgInventoryEmptyError
	case errors.Is(err, domain.ErrNoAccountSelected):
		return http.StatusConflict, ErrMsgNoAccountSelectedError
	case errors.Is(err, domain.ErrEmptyParty):
		return http.StatusConflict, ErrMsgEmptyPartyError
	case errors.Is(err, domain.ErrNotInParty):
		return http.StatusConflict, ErrMsgNotInPartyError
	case errors.Is(err, domain.ErrNoPlayersSpawned):
		return http.StatusConflict, ErrMsgNoPlayersSpawnedError
	case errors.Is(err, domain.ErrDungeonActive):
		return http.StatusConflict, ErrMsgDungeonActiveError
	case errors.Is(err, domain.ErrNoActiveDungeon):
		return http.StatusConflict, ErrMsgNoActiveDungeonError
	case errors.Is(err, domain.ErrAwaitingDecision):
		return http.StatusConflict, ErrMsgAwaitingDecisionError
	case errors.Is(err, domain.ErrNotAwaitingDecision):
		return http.StatusConflict, ErrMsgNotAwaitingError
	case errors.Is(err, domain.ErrDungeonFinished):
		return http.StatusConflict, ErrMsgDungeonFinishedError
	case errors.Is(err, domain.ErrNothingToInteract):
		return http.StatusUnprocessableEntity, ErrMsgNothingToInteractError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
