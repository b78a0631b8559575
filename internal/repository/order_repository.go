package repository

import (
	"context"
	"fmt"
	"time"

	"kartpay/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const orderColumns = `id, customer_id, total_amount, status, shipping_address, shipping_city, shipping_state, shipping_zip_code, shipping_country, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.TotalAmount,
		&o.Status,
		&o.ShippingAddress,
		&o.ShippingCity,
		&o.ShippingState,
		&o.ShippingZipCode,
		&o.ShippingCountry,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetActiveCartByCustomer retrieves the customer's single CART-status order
// with its items.
func (r *orderRepository) GetActiveCartByCustomer(ctx context.Context, customerID int64) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1 AND status = $2
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, customerID, model.OrderStatusCart))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("customer_id", customerID).Msg("no active cart found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to query active cart")
		return nil, fmt.Errorf("failed to query active cart: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetByID retrieves an order with its items.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// loadItems fills in the order's items, joined with product names.
func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price, oi.subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	rows, err := r.pool.Query(ctx, query, order.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to query order items")
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return fmt.Errorf("error iterating order items: %w", err)
	}

	order.Items = items
	return nil
}

// CreateCart inserts a new empty CART order within the provided transaction.
func (r *orderRepository) CreateCart(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (customer_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		order.CustomerID,
		order.TotalAmount,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", order.CustomerID).Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().Int64("order_id", order.ID).Msg("cart created successfully")

	return nil
}

// UpdateForCheckout persists shipping fields, status and updated_at.
func (r *orderRepository) UpdateForCheckout(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $1, shipping_address = $2, shipping_city = $3, shipping_state = $4, shipping_zip_code = $5, shipping_country = $6, updated_at = $7
		WHERE id = $8
	`

	_, err := tx.Exec(ctx, query,
		order.Status,
		order.ShippingAddress,
		order.ShippingCity,
		order.ShippingState,
		order.ShippingZipCode,
		order.ShippingCountry,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to update order for checkout")
		return fmt.Errorf("failed to update order for checkout: %w", err)
	}

	return nil
}

// UpdateStatus transitions an order's status within the transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := tx.Exec(ctx, query, status, updatedAt, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Str("status", string(status)).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	r.logger.Debug().Int64("order_id", orderID).Str("status", string(status)).Msg("order status updated")

	return nil
}

// InsertItem inserts a new order item within the provided transaction.
func (r *orderRepository) InsertItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.UnitPrice,
		item.Subtotal,
	).Scan(&item.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", item.OrderID).
			Int64("product_id", item.ProductID).
			Msg("failed to insert order item")
		return fmt.Errorf("failed to insert order item: %w", err)
	}

	return nil
}

// UpdateItem persists quantity and subtotal of an existing item.
func (r *orderRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	query := `
		UPDATE order_items
		SET quantity = $1, subtotal = $2
		WHERE id = $3
	`

	_, err := tx.Exec(ctx, query, item.Quantity, item.Subtotal, item.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", item.ID).Msg("failed to update order item")
		return fmt.Errorf("failed to update order item: %w", err)
	}

	return nil
}

// UpdateTotal persists the order total within the transaction.
func (r *orderRepository) UpdateTotal(ctx context.Context, tx pgx.Tx, orderID int64, total decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET total_amount = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := tx.Exec(ctx, query, total, updatedAt, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to update order total")
		return fmt.Errorf("failed to update order total: %w", err)
	}

	return nil
}
