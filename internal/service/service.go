package service

import (
	"context"
	"time"

	"kartpay/internal/model"

	"github.com/google/uuid"
)

// CustomerService defines operations for customer management.
type CustomerService interface {
	// Register registers a new customer with unique email and phone number.
	Register(ctx context.Context, req *model.CustomerRegistrationRequest) (*model.CustomerResponse, error)
}

// ProductService defines operations for catalogue management.
type ProductService interface {
	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.ProductResponse, error)

	// GetAll retrieves all active products.
	GetAll(ctx context.Context) ([]model.ProductResponse, error)

	// GetByID retrieves a single active product.
	GetByID(ctx context.Context, id int64) (*model.ProductResponse, error)

	// Update replaces the mutable fields of an existing product.
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductResponse, error)
}

// CartService defines operations on the customer's active cart.
type CartService interface {
	// AddToCart adds a product to the customer's active cart, creating the
	// cart if needed and merging duplicate product rows.
	AddToCart(ctx context.Context, customerID int64, req *model.AddToCartRequest) (*model.OrderResponse, error)

	// GetCart retrieves the customer's active cart.
	GetCart(ctx context.Context, customerID int64) (*model.OrderResponse, error)
}

// CheckoutService defines the checkout orchestration operations.
type CheckoutService interface {
	// ProcessCheckout turns the customer's active cart into a pending
	// order and runs the payment retry loop against the simulated gateway.
	ProcessCheckout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// GetCheckoutStatus assembles the checkout projection for an existing
	// order without mutating any state.
	GetCheckoutStatus(ctx context.Context, customerID, orderID int64) (*model.CheckoutResponse, error)
}

// TokenizationService defines the simulated card tokenization operations.
type TokenizationService interface {
	// CreateToken validates the card and stores an opaque token for it.
	CreateToken(ctx context.Context, req *model.TokenizationRequest) (*model.TokenizationResponse, error)
}

// AuditService records and queries audit events. Recording never returns
// an error: any failure is logged and swallowed so audit problems cannot
// interrupt business flows.
type AuditService interface {
	LogEvent(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any, status model.EventStatus, errorMessage string)
	LogSuccess(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any)
	LogFailure(ctx context.Context, eventTypeName, entityType, entityID, userID, description, errorMessage string, details any)
	LogRetry(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any)

	GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLogResponse, error)
	ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLogResponse, error)
	ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLogResponse, error)
	ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLogResponse, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLogResponse, error)
	ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error)
	ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLogResponse, error)
	ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error)
}

// EmailSender sends customer notifications. Sends are best-effort: every
// failure is logged and swallowed.
type EmailSender interface {
	SendPaymentApproved(ctx context.Context, customerEmail, customerName, orderID, amount string)
	SendPaymentFailed(ctx context.Context, customerEmail, customerName, orderID, failureReason string)
}
