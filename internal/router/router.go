package router

import (
	"net/http"
	"strings"

	"kartpay/internal/config"
	"kartpay/internal/handler"
	"kartpay/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	tokenizationHandler *handler.TokenizationHandler,
	auditHandler *handler.AuditHandler,
	auth config.AuthConfig,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/v1/customers", customerHandler.Register)
	mux.HandleFunc("/api/v1/customers/", customerHandler.Register)

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		onCollection := r.URL.Path == "/api/v1/products" || r.URL.Path == "/api/v1/products/"

		switch {
		case r.Method == http.MethodPost && onCollection:
			productHandler.Create(w, r)
		case r.Method == http.MethodGet && onCollection:
			productHandler.GetAll(w, r)
		case r.Method == http.MethodGet:
			productHandler.GetByID(w, r)
		case r.Method == http.MethodPut && !onCollection:
			productHandler.Update(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/v1/products", productRouteHandler)
	mux.HandleFunc("/api/v1/products/", productRouteHandler)

	// Cart handler function
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v1/orders/cart/") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodPost:
			orderHandler.AddToCart(w, r)
		case http.MethodGet:
			orderHandler.GetCart(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/v1/orders/cart/", cartRouteHandler)

	// Checkout handler function
	checkoutRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		onCollection := r.URL.Path == "/api/v1/payments/checkout" || r.URL.Path == "/api/v1/payments/checkout/"

		switch {
		case r.Method == http.MethodPost && onCollection:
			paymentHandler.Checkout(w, r)
		case r.Method == http.MethodGet && !onCollection:
			paymentHandler.GetCheckoutStatus(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/v1/payments/checkout", checkoutRouteHandler)
	mux.HandleFunc("/api/v1/payments/checkout/", checkoutRouteHandler)

	mux.HandleFunc("/api/v1/tokenization/tokens", tokenizationHandler.CreateToken)
	mux.HandleFunc("/api/v1/tokenization/tokens/", tokenizationHandler.CreateToken)

	mux.HandleFunc("/api/v1/audit/", auditHandler.Query)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(auth, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
