// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

// Package api wires the HTTP surface: routing, request decoding, parameter
// parsing and the translation of service errors into response envelopes.
package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/inventory"
	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/orders"
	"github.com/stockroomhq/stockroom/internal/picking"
	"github.com/stockroomhq/stockroom/internal/store"
	"github.com/stockroomhq/stockroom/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, models.ErrorResponse{
		Error: &models.APIError{Code: code, Message: message},
	})
}

func respondValidation(w http.ResponseWriter, ve *validation.RequestValidationError) {
	apiErr := ve.ToAPIError()
	respondJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Error: &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// respondServiceError maps sentinel and tagged errors from the service
// layer to HTTP responses. Anything unrecognized is a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var cycleErr *picking.CycleError

	switch {
	case errors.Is(err, orders.ErrNotFound), errors.Is(err, inventory.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, inventory.ErrDuplicate):
		respondError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, orders.ErrUnknownProduct):
		respondError(w, http.StatusUnprocessableEntity, "UNKNOWN_PRODUCT", err.Error())
	case errors.As(err, &cycleErr):
		respondError(w, http.StatusUnprocessableEntity, "CYCLIC_COMPOSITION", cycleErr.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, store.ErrDataUnavailable):
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("data unavailable")
		respondError(w, http.StatusInternalServerError, "DATA_UNAVAILABLE", "data store unavailable")
	default:
		logging.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled service error")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON: "+err.Error())
		return false
	}
	return true
}
