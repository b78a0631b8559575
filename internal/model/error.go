package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeCustomerNotFound     = "CUSTOMER_NOT_FOUND"
	ErrCodeDuplicateCustomer    = "DUPLICATE_CUSTOMER"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeAuditLogNotFound     = "AUDIT_LOG_NOT_FOUND"
	ErrCodeInsufficientStock    = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodePaymentFailed        = "PAYMENT_FAILED"
	ErrCodeTokenizationRejected = "TOKENIZATION_REJECTED"
	ErrCodeInvalidCardData      = "INVALID_CARD_DATA"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation surfaced to clients with a
// stable code. Messages carry entity identifiers and are safe to expose.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ErrCustomerNotFound reports an unresolvable customer id.
func ErrCustomerNotFound(customerID int64) *DomainError {
	return NewDomainError(ErrCodeCustomerNotFound,
		fmt.Sprintf("Customer with ID %d not found", customerID))
}

// ErrProductNotFound reports a missing or inactive product.
func ErrProductNotFound(productID int64) *DomainError {
	return NewDomainError(ErrCodeProductNotFound,
		fmt.Sprintf("Product with ID %d not found or is inactive", productID))
}

// ErrOrderNotFound reports a missing order. Also used for the empty-cart
// checkout case to keep the client-facing contract stable.
func ErrOrderNotFound(message string) *DomainError {
	return NewDomainError(ErrCodeOrderNotFound, message)
}

// ErrAuditLogNotFound reports an unresolvable audit log id.
func ErrAuditLogNotFound(id string) *DomainError {
	return NewDomainError(ErrCodeAuditLogNotFound,
		fmt.Sprintf("Audit log with ID %s not found", id))
}

// ErrInsufficientStock reports a cart quantity exceeding available stock.
func ErrInsufficientStock(productName string, available, requested int) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product '%s'. Available: %d, Requested: %d",
			productName, available, requested))
}

// ErrDuplicateCustomer reports an email or phone number already registered.
func ErrDuplicateCustomer(message string) *DomainError {
	return NewDomainError(ErrCodeDuplicateCustomer, message)
}

// ErrPaymentFailed reports exhausted payment retries. It is also raised by
// the status lookup when no payment record exists for an order.
func ErrPaymentFailed(message string) *DomainError {
	return NewDomainError(ErrCodePaymentFailed, message)
}

// ErrTokenizationRejected reports a probabilistic tokenization rejection.
func ErrTokenizationRejected(message string) *DomainError {
	return NewDomainError(ErrCodeTokenizationRejected, message)
}

// ErrInvalidCardData reports invalid card details, e.g. an expired card.
func ErrInvalidCardData(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidCardData, message)
}

// ErrInvalidQuantity is returned when a cart mutation carries a
// non-positive quantity.
var ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")

// ErrorResponse represents a standardised error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
