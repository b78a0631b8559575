package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the one-to-one payment record for an order. Amount is copied
// from the order total at creation time.
type Payment struct {
	ID            int64           `json:"id" db:"id"`
	OrderID       int64           `json:"orderId" db:"order_id"`
	TokenizedCard string          `json:"-" db:"tokenized_card"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        PaymentStatus   `json:"status" db:"status"`
	AttemptCount  int             `json:"attemptCount" db:"attempt_count"`
	FailureReason string          `json:"failureReason,omitempty" db:"failure_reason"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// CheckoutRequest is the payload for processing a checkout.
type CheckoutRequest struct {
	CustomerID      int64  `json:"customerId"`
	TokenizedCard   string `json:"tokenizedCard"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCity    string `json:"shippingCity"`
	ShippingState   string `json:"shippingState"`
	ShippingZipCode string `json:"shippingZipCode"`
	ShippingCountry string `json:"shippingCountry"`
}

// PaymentResponse is the payment projection nested in checkout responses.
type PaymentResponse struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	AttemptCount  int             `json:"attemptCount"`
	FailureReason string          `json:"failureReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CheckoutResponse is the projection returned by checkout processing and
// the checkout status lookup.
type CheckoutResponse struct {
	OrderID         int64               `json:"orderId"`
	CustomerID      int64               `json:"customerId"`
	CustomerName    string              `json:"customerName"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	OrderStatus     string              `json:"orderStatus"`
	Payment         PaymentResponse     `json:"payment"`
	ShippingAddress string              `json:"shippingAddress"`
	ShippingCity    string              `json:"shippingCity"`
	ShippingState   string              `json:"shippingState"`
	ShippingZipCode string              `json:"shippingZipCode"`
	ShippingCountry string              `json:"shippingCountry"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}
