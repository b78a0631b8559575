package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kartpay/internal/model"

	"github.com/rs/zerolog"
)

// errCodeMethodNotAllowed is handler-level only, requests with a wrong
// method never reach the services.
const errCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

// writeJSON writes a JSON response with the given status code. The status
// line is already on the wire when encoding runs, so encode failures
// cannot be surfaced to the client.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a standardised error body with the given status code.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service error onto the HTTP contract. Domain
// errors carry their own stable code; anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "An unexpected error occurred", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeCustomerNotFound,
		model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeAuditLogNotFound:
		status = http.StatusNotFound
	case model.ErrCodeDuplicateCustomer:
		status = http.StatusConflict
	case model.ErrCodeTokenizationRejected:
		status = http.StatusUnprocessableEntity
	case model.ErrCodeInvalidCardData,
		model.ErrCodeInsufficientStock,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidJSON:
		status = http.StatusBadRequest
	case model.ErrCodePaymentFailed:
		status = http.StatusPaymentRequired
	case model.ErrCodeUnauthorised:
		status = http.StatusUnauthorized
	}

	writeError(w, status, domainErr.Code, domainErr.Message, logger)
}
