package handler

import (
	"encoding/json"
	"net/http"

	"kartpay/internal/model"
	"kartpay/internal/service"

	"github.com/rs/zerolog"
)

// TokenizationHandler handles card tokenization HTTP requests.
type TokenizationHandler struct {
	service service.TokenizationService
	logger  zerolog.Logger
}

// NewTokenizationHandler creates a new tokenization handler.
func NewTokenizationHandler(service service.TokenizationService, logger zerolog.Logger) *TokenizationHandler {
	return &TokenizationHandler{
		service: service,
		logger:  logger.With().Str("handler", "tokenization").Logger(),
	}
}

// CreateToken handles POST /api/v1/tokenization/tokens requests.
func (h *TokenizationHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.TokenizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	token, err := h.service.CreateToken(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, token)
}
