package repository

import (
	"context"
	"time"

	"kartpay/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// Create inserts a new customer and fills in the generated ID.
	Create(ctx context.Context, customer *model.Customer) error

	// GetByID retrieves a single customer by ID. Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// ExistsByEmail checks whether the (lowercased) email is registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByPhoneNumber checks whether the phone number is registered.
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product and fills in the generated ID.
	Create(ctx context.Context, product *model.Product) error

	// GetActiveByID retrieves an active product by ID. Returns nil if the
	// product is absent or inactive.
	GetActiveByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByID retrieves a product by ID regardless of its active flag.
	// Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetAllActive retrieves all active products.
	GetAllActive(ctx context.Context) ([]model.Product, error)

	// Update persists the mutable fields of an existing product.
	Update(ctx context.Context, product *model.Product) error

	// UpdateStock sets a product's stock within the provided transaction.
	UpdateStock(ctx context.Context, tx pgx.Tx, productID int64, stock int, updatedAt time.Time) error
}

// OrderRepository defines the interface for order data access operations.
// Orders are always loaded together with their items.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetActiveCartByCustomer retrieves the customer's single CART-status
	// order with its items. Returns nil if no active cart exists.
	GetActiveCartByCustomer(ctx context.Context, customerID int64) (*model.Order, error)

	// GetByID retrieves an order with its items. Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// CreateCart inserts a new empty CART order within the transaction and
	// fills in the generated ID.
	CreateCart(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdateForCheckout persists shipping fields, status and updated_at.
	UpdateForCheckout(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdateStatus transitions an order's status within the transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus, updatedAt time.Time) error

	// InsertItem inserts a new order item within the transaction and fills
	// in the generated ID.
	InsertItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// UpdateItem persists quantity and subtotal of an existing item.
	UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// UpdateTotal persists the order total within the transaction.
	UpdateTotal(ctx context.Context, tx pgx.Tx, orderID int64, total decimal.Decimal, updatedAt time.Time) error
}

// PaymentRepository defines the interface for payment data access operations.
type PaymentRepository interface {
	// Create inserts a new payment within the transaction and fills in the
	// generated ID.
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error

	// Update persists status, attempt count and failure reason.
	Update(ctx context.Context, tx pgx.Tx, payment *model.Payment) error

	// GetByOrderID retrieves the payment linked to an order. Returns nil
	// if absent.
	GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error)
}

// CardTokenRepository defines the interface for card token persistence.
type CardTokenRepository interface {
	// Create inserts a new card token and fills in the generated ID.
	Create(ctx context.Context, token *model.CardToken) error

	// ExistsByToken checks whether the token value is already stored.
	ExistsByToken(ctx context.Context, token string) (bool, error)
}

// AuditRepository defines the interface for the append-only audit store.
// Writes deliberately bypass any surrounding transaction so an audit
// failure can never unwind a business state change.
type AuditRepository interface {
	// Insert appends an audit record.
	Insert(ctx context.Context, entry *model.AuditLog) error

	// GetByID retrieves a single audit record. Returns nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error)

	// ListByEntityID retrieves all records for an entity, newest first.
	ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLog, error)

	// ListByEventType retrieves records of one event type, newest first.
	ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLog, error)

	// ListByEntityType retrieves records for one entity type, newest first.
	ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLog, error)

	// ListByUserID retrieves records attributed to a user, newest first.
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLog, error)

	// ListByStatus retrieves records with one status, newest first.
	ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLog, error)

	// ListByDateRange retrieves records created within [start, end], newest first.
	ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLog, error)

	// ListByEventTypeAndStatus combines the event-type and status filters.
	ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLog, error)
}
