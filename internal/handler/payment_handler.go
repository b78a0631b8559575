package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"kartpay/internal/model"
	"kartpay/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles checkout-related HTTP requests.
type PaymentHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.CheckoutService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Checkout handles POST /api/v1/payments/checkout requests.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.CustomerID == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "customerId is required", h.logger)
		return
	}
	if strings.TrimSpace(req.TokenizedCard) == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "tokenizedCard is required", h.logger)
		return
	}

	shippingFields := []struct {
		name   string
		value  string
		maxLen int
	}{
		{"shippingAddress", req.ShippingAddress, 255},
		{"shippingCity", req.ShippingCity, 100},
		{"shippingState", req.ShippingState, 100},
		{"shippingZipCode", req.ShippingZipCode, 20},
		{"shippingCountry", req.ShippingCountry, 100},
	}
	for _, f := range shippingFields {
		if strings.TrimSpace(f.value) == "" {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, f.name+" is required", h.logger)
			return
		}
		if len(f.value) > f.maxLen {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField,
				fmt.Sprintf("%s must not exceed %d characters", f.name, f.maxLen), h.logger)
			return
		}
	}

	result, err := h.service.ProcessCheckout(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetCheckoutStatus handles GET /api/v1/payments/checkout/{customerId}/{orderId} requests.
func (h *PaymentHandler) GetCheckoutStatus(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/payments/checkout/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "customer ID and order ID are required", h.logger)
		return
	}

	customerID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid customer ID format", h.logger)
		return
	}

	orderID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid order ID format", h.logger)
		return
	}

	result, err := h.service.GetCheckoutStatus(r.Context(), customerID, orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
