package repository

import (
	"context"
	"fmt"

	"kartpay/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// Create inserts a new customer and fills in the generated ID.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone_number, address, city, state, zip_code, country, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.PhoneNumber,
		customer.Address,
		customer.City,
		customer.State,
		customer.ZipCode,
		customer.Country,
		customer.Active,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Scan(&customer.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("email", customer.Email).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Int64("customer_id", customer.ID).Msg("customer created successfully")

	return nil
}

// GetByID retrieves a single customer by ID.
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone_number, address, city, state, zip_code, country, active, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.PhoneNumber,
		&c.Address,
		&c.City,
		&c.State,
		&c.ZipCode,
		&c.Country,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// ExistsByEmail checks whether the email is registered.
func (r *customerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Msg("failed to check email existence")
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// ExistsByPhoneNumber checks whether the phone number is registered.
func (r *customerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE phone_number = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, phoneNumber).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Msg("failed to check phone number existence")
		return false, fmt.Errorf("failed to check phone number existence: %w", err)
	}

	return exists, nil
}
