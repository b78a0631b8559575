package model

// OrderStatus is the lifecycle state of an order. CART is the single active
// cart per customer; DELIVERED and CANCELLED are terminal.
type OrderStatus string

const (
	OrderStatusCart       OrderStatus = "CART"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus is the lifecycle state of a payment. Only PROCESSING,
// APPROVED and FAILED_FINAL are ever persisted; REJECTED is a transient
// per-attempt outcome recorded through the failure reason.
type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "PENDING"
	PaymentStatusProcessing  PaymentStatus = "PROCESSING"
	PaymentStatusApproved    PaymentStatus = "APPROVED"
	PaymentStatusRejected    PaymentStatus = "REJECTED"
	PaymentStatusFailedFinal PaymentStatus = "FAILED_FINAL"
)

// EventStatus is the outcome recorded on an audit event.
type EventStatus string

const (
	EventStatusSuccess EventStatus = "SUCCESS"
	EventStatusFailure EventStatus = "FAILURE"
	EventStatusPending EventStatus = "PENDING"
	EventStatusRetry   EventStatus = "RETRY"
)

// ValidEventStatus reports whether s is a known event status.
func ValidEventStatus(s string) bool {
	switch EventStatus(s) {
	case EventStatusSuccess, EventStatusFailure, EventStatusPending, EventStatusRetry:
		return true
	}
	return false
}

// EventType identifies the kind of audited event.
type EventType string

const (
	EventCustomerRegistered    EventType = "CUSTOMER_REGISTERED"
	EventCustomerUpdated       EventType = "CUSTOMER_UPDATED"
	EventCustomerDeleted       EventType = "CUSTOMER_DELETED"
	EventTokenizationInitiated EventType = "TOKENIZATION_INITIATED"
	EventTokenizationCompleted EventType = "TOKENIZATION_COMPLETED"
	EventTokenizationFailed    EventType = "TOKENIZATION_FAILED"
	EventProductCreated        EventType = "PRODUCT_CREATED"
	EventProductUpdated        EventType = "PRODUCT_UPDATED"
	EventProductDeleted        EventType = "PRODUCT_DELETED"
	EventCartCreated           EventType = "CART_CREATED"
	EventItemAddedToCart       EventType = "ITEM_ADDED_TO_CART"
	EventItemRemovedFromCart   EventType = "ITEM_REMOVED_FROM_CART"
	EventCartCleared           EventType = "CART_CLEARED"
	EventPaymentInitiated      EventType = "PAYMENT_INITIATED"
	EventPaymentAttempted      EventType = "PAYMENT_ATTEMPTED"
	EventPaymentApproved       EventType = "PAYMENT_APPROVED"
	EventPaymentRejected       EventType = "PAYMENT_REJECTED"
	EventPaymentCompleted      EventType = "PAYMENT_COMPLETED"
	EventEmailSent             EventType = "EMAIL_SENT"
	EventEmailFailed           EventType = "EMAIL_FAILED"
	EventOrderCreated          EventType = "ORDER_CREATED"
	EventOrderStatusChanged    EventType = "ORDER_STATUS_CHANGED"
	EventOrderCancelled        EventType = "ORDER_CANCELLED"
)

var knownEventTypes = map[EventType]struct{}{
	EventCustomerRegistered:    {},
	EventCustomerUpdated:       {},
	EventCustomerDeleted:       {},
	EventTokenizationInitiated: {},
	EventTokenizationCompleted: {},
	EventTokenizationFailed:    {},
	EventProductCreated:        {},
	EventProductUpdated:        {},
	EventProductDeleted:        {},
	EventCartCreated:           {},
	EventItemAddedToCart:       {},
	EventItemRemovedFromCart:   {},
	EventCartCleared:           {},
	EventPaymentInitiated:      {},
	EventPaymentAttempted:      {},
	EventPaymentApproved:       {},
	EventPaymentRejected:       {},
	EventPaymentCompleted:      {},
	EventEmailSent:             {},
	EventEmailFailed:           {},
	EventOrderCreated:          {},
	EventOrderStatusChanged:    {},
	EventOrderCancelled:        {},
}

// ValidEventType reports whether name is a known event type.
func ValidEventType(name string) bool {
	_, ok := knownEventTypes[EventType(name)]
	return ok
}
