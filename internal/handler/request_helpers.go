package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/KubeRPG_Go/internal/logger"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 16

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// On failure the error response has already been written and the handler
// should return.
//
//	var req EquipRequest
//	if err := DecodeAndValidateRequest(r, w, &req, ActionEquip); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, action string) error {
	return decode(r, w, req, action, false)
}

// DecodeOptionalRequest is DecodeAndValidateRequest for endpoints whose body
// may be omitted entirely
func DecodeOptionalRequest(r *http.Request, w http.ResponseWriter, req interface{}, action string) error {
	return decode(r, w, req, action, true)
}

func decode(r *http.Request, w http.ResponseWriter, req interface{}, action string, optional bool) error {
	log := logger.FromContext(r.Context())

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(req)
	if err != nil && !(optional && errors.Is(err, io.EOF)) {
		log.Warn(LogMsgDecodeFailed, LogFieldAction, action, LogFieldError, err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, LogFieldAction, action)

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgRequestInvalid, LogFieldAction, action, LogFieldError, err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// pathParam returns a required chi URL parameter, writing a 400 when it is empty
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, name))
		return "", false
	}
	return value, true
}
