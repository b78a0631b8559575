package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order. A single order per customer in CART
// status is the active cart. TotalAmount is the exact sum of item subtotals
// at the time of last recomputation.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	CustomerID      int64           `json:"customerId" db:"customer_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	ShippingAddress string          `json:"shippingAddress" db:"shipping_address"`
	ShippingCity    string          `json:"shippingCity" db:"shipping_city"`
	ShippingState   string          `json:"shippingState" db:"shipping_state"`
	ShippingZipCode string          `json:"shippingZipCode" db:"shipping_zip_code"`
	ShippingCountry string          `json:"shippingCountry" db:"shipping_country"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// RecomputeTotal sets TotalAmount to the exact sum of item subtotals.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.TotalAmount = total
}

// OrderItem is a line item in an order. UnitPrice snapshots the product
// price at add-time; Subtotal = UnitPrice × Quantity.
type OrderItem struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"-" db:"order_id"`
	ProductID   int64           `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// AddToCartRequest is the payload for adding a product to the active cart.
type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderItemResponse is the projection of a single line item.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the full cart/order projection.
type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerID   int64               `json:"customerId"`
	CustomerName string              `json:"customerName"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
