package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"kartpay/internal/model"
	"kartpay/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles cart-related HTTP requests.
type OrderHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.CartService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// AddToCart handles POST /api/v1/orders/cart/{customerId} requests.
func (h *OrderHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	var req model.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), customerID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// GetCart handles GET /api/v1/orders/cart/{customerId} requests.
func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// customerID extracts the numeric customer ID from the request path.
func (h *OrderHandler) customerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/orders/cart/")
	if idStr == "" || strings.Contains(idStr, "/") {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "customer ID is required", h.logger)
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid customer ID format", h.logger)
		return 0, false
	}

	return id, true
}
