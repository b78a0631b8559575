package repository

import (
	"context"
	"fmt"
	"time"

	"kartpay/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// auditRepository implements the AuditRepository interface using PostgreSQL.
// All writes go straight through the pool so audit persistence is always its
// own unit of work, never part of a business transaction.
type auditRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAuditRepository creates a new PostgreSQL-backed audit repository.
func NewAuditRepository(pool *pgxpool.Pool, logger zerolog.Logger) AuditRepository {
	return &auditRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "audit").Logger(),
	}
}

// Insert appends an audit record.
func (r *auditRepository) Insert(ctx context.Context, entry *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, event_type, entity_type, entity_id, user_id, description, details, status, error_message, source_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.EventType,
		entry.EntityType,
		entry.EntityID,
		nullable(entry.UserID),
		entry.Description,
		nullable(entry.Details),
		entry.Status,
		nullable(entry.ErrorMessage),
		nullable(entry.SourceIP),
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("event_type", string(entry.EventType)).Msg("failed to insert audit log")
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

const auditColumns = `id, event_type, entity_type, COALESCE(entity_id, ''), COALESCE(user_id, ''), COALESCE(description, ''), COALESCE(details, ''), status, COALESCE(error_message, ''), COALESCE(source_ip, ''), created_at`

func (r *auditRepository) scanRows(rows pgx.Rows) ([]model.AuditLog, error) {
	defer rows.Close()

	var logs []model.AuditLog
	for rows.Next() {
		var l model.AuditLog
		err := rows.Scan(
			&l.ID,
			&l.EventType,
			&l.EntityType,
			&l.EntityID,
			&l.UserID,
			&l.Description,
			&l.Details,
			&l.Status,
			&l.ErrorMessage,
			&l.SourceIP,
			&l.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan audit log row")
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating audit log rows")
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return logs, nil
}

// GetByID retrieves a single audit record.
func (r *auditRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE id = $1
	`

	var l model.AuditLog
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID,
		&l.EventType,
		&l.EntityType,
		&l.EntityID,
		&l.UserID,
		&l.Description,
		&l.Details,
		&l.Status,
		&l.ErrorMessage,
		&l.SourceIP,
		&l.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("audit_id", id.String()).Msg("failed to query audit log")
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}

	return &l, nil
}

// ListByEntityID retrieves all records for an entity, newest first.
func (r *auditRepository) ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE entity_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, entityID)
	if err != nil {
		r.logger.Error().Err(err).Str("entity_id", entityID).Msg("failed to query audit logs")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}

// ListByEventType retrieves records of one event type, newest first.
func (r *auditRepository) ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE event_type = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, eventType, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to query audit logs")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}

// ListByEntityType retrieves records for one entity type, newest first.
func (r *auditRepository) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE entity_type = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, entityType, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("entity_type", entityType).Msg("failed to query audit logs")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}

// ListByUserID retrieves records attributed to a user, newest first.
func (r *auditRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query audit logs")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}

// ListByStatus retrieves records with one status, newest first.
func (r *auditRepository) ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("status", string(status)).Msg("failed to query audit logs")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}

// ListByDateRange retrieves records created within [start, end], newest first.
func (r *auditRepository) ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, start, end, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query audit logs by date range")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}

// ListByEventTypeAndStatus combines the event-type and status filters.
func (r *auditRepository) ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE event_type = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, eventType, status, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query audit logs by event type and status")
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return r.scanRows(rows)
}
