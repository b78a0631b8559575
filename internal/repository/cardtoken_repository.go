package repository

import (
	"context"
	"fmt"

	"kartpay/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cardTokenRepository implements the CardTokenRepository interface using PostgreSQL.
type cardTokenRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCardTokenRepository creates a new PostgreSQL-backed card token repository.
func NewCardTokenRepository(pool *pgxpool.Pool, logger zerolog.Logger) CardTokenRepository {
	return &cardTokenRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "card_token").Logger(),
	}
}

// Create inserts a new card token and fills in the generated ID.
func (r *cardTokenRepository) Create(ctx context.Context, token *model.CardToken) error {
	query := `
		INSERT INTO card_tokens (token, last_four_digits, card_brand, expiration_date, cardholder_name, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		token.Token,
		token.LastFourDigits,
		token.CardBrand,
		token.ExpirationDate,
		token.CardholderName,
		token.Active,
		token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("last_four", token.LastFourDigits).Msg("failed to create card token")
		return fmt.Errorf("failed to create card token: %w", err)
	}

	r.logger.Debug().Int64("card_token_id", token.ID).Msg("card token created successfully")

	return nil
}

// ExistsByToken checks whether the token value is already stored.
func (r *cardTokenRepository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM card_tokens WHERE token = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, token).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Msg("failed to check token existence")
		return false, fmt.Errorf("failed to check token existence: %w", err)
	}

	return exists, nil
}
