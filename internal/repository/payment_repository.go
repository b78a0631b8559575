package repository

import (
	"context"
	"fmt"

	"kartpay/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Create inserts a new payment within the provided transaction.
func (r *paymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (order_id, tokenized_card, amount, status, attempt_count, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		payment.OrderID,
		payment.TokenizedCard,
		payment.Amount,
		payment.Status,
		payment.AttemptCount,
		nullable(payment.FailureReason),
		payment.CreatedAt,
		payment.UpdatedAt,
	).Scan(&payment.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", payment.OrderID).Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.logger.Debug().Int64("payment_id", payment.ID).Msg("payment created successfully")

	return nil
}

// Update persists status, attempt count and failure reason.
func (r *paymentRepository) Update(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		UPDATE payments
		SET status = $1, attempt_count = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := tx.Exec(ctx, query,
		payment.Status,
		payment.AttemptCount,
		nullable(payment.FailureReason),
		payment.UpdatedAt,
		payment.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("payment_id", payment.ID).Msg("failed to update payment")
		return fmt.Errorf("failed to update payment: %w", err)
	}

	r.logger.Debug().
		Int64("payment_id", payment.ID).
		Str("status", string(payment.Status)).
		Int("attempt_count", payment.AttemptCount).
		Msg("payment updated")

	return nil
}

// GetByOrderID retrieves the payment linked to an order.
func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	query := `
		SELECT id, order_id, tokenized_card, amount, status, attempt_count, COALESCE(failure_reason, ''), created_at, updated_at
		FROM payments
		WHERE order_id = $1
	`

	var p model.Payment
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&p.ID,
		&p.OrderID,
		&p.TokenizedCard,
		&p.Amount,
		&p.Status,
		&p.AttemptCount,
		&p.FailureReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", orderID).Msg("payment not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query payment")
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}

	return &p, nil
}

// nullable maps an empty string to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
