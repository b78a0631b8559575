package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kartpay/internal/model"
	"kartpay/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// auditService implements AuditService. Recording failures are logged and
// swallowed: a broken audit store must never interrupt a business flow.
// The underlying repository writes through the pool, outside any caller
// transaction.
type auditService struct {
	auditRepo repository.AuditRepository
	logger    zerolog.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo repository.AuditRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		logger:    logger.With().Str("service", "audit").Logger(),
	}
}

// LogEvent records a single audit event. Unknown event types and detail
// marshalling problems are logged, never surfaced.
func (s *auditService) LogEvent(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any, status model.EventStatus, errorMessage string) {
	if !model.ValidEventType(eventTypeName) {
		s.logger.Error().Str("event_type", eventTypeName).Msg("refusing to record unknown audit event type")
		return
	}

	var detailsJSON string
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Error().Err(err).Str("event_type", eventTypeName).Msg("failed to marshal audit details")
		} else {
			detailsJSON = string(raw)
		}
	}

	entry := &model.AuditLog{
		ID:           uuid.New(),
		EventType:    model.EventType(eventTypeName),
		EntityType:   entityType,
		EntityID:     entityID,
		UserID:       userID,
		Description:  description,
		Details:      detailsJSON,
		Status:       status,
		ErrorMessage: errorMessage,
		CreatedAt:    time.Now(),
	}

	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		s.logger.Error().
			Err(err).
			Str("event_type", eventTypeName).
			Str("entity_id", entityID).
			Msg("failed to record audit event")
		return
	}

	s.logger.Debug().
		Str("event_type", eventTypeName).
		Str("entity_type", entityType).
		Str("entity_id", entityID).
		Str("status", string(status)).
		Msg("audit event recorded")
}

// LogSuccess records a SUCCESS event.
func (s *auditService) LogSuccess(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any) {
	s.LogEvent(ctx, eventTypeName, entityType, entityID, userID, description, details, model.EventStatusSuccess, "")
}

// LogFailure records a FAILURE event with the given error message.
func (s *auditService) LogFailure(ctx context.Context, eventTypeName, entityType, entityID, userID, description, errorMessage string, details any) {
	s.LogEvent(ctx, eventTypeName, entityType, entityID, userID, description, details, model.EventStatusFailure, errorMessage)
}

// LogRetry records a RETRY event.
func (s *auditService) LogRetry(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any) {
	s.LogEvent(ctx, eventTypeName, entityType, entityID, userID, description, details, model.EventStatusRetry, "")
}

// GetByID retrieves a single audit record.
func (s *auditService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLogResponse, error) {
	entry, err := s.auditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}
	if entry == nil {
		return nil, model.ErrAuditLogNotFound(id.String())
	}

	resp := mapAuditToResponse(entry)
	return &resp, nil
}

// ListByEntityID retrieves the full history of one entity, newest first.
func (s *auditService) ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByEntityID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

// ListByEventType retrieves a page of records of one event type.
func (s *auditService) ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByEventType(ctx, eventType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

// ListByEntityType retrieves a page of records for one entity type.
func (s *auditService) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByEntityType(ctx, entityType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

// ListByUserID retrieves a page of records attributed to one user.
func (s *auditService) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

// ListByStatus retrieves a page of records with one status.
func (s *auditService) ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

// ListByDateRange retrieves a page of records created within [start, end].
func (s *auditService) ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByDateRange(ctx, start, end, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

// ListByEventTypeAndStatus combines the event-type and status filters.
func (s *auditService) ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error) {
	entries, err := s.auditRepo.ListByEventTypeAndStatus(ctx, eventType, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return mapAuditListToResponses(entries), nil
}

func mapAuditToResponse(entry *model.AuditLog) model.AuditLogResponse {
	return model.AuditLogResponse{
		ID:           entry.ID,
		EventType:    string(entry.EventType),
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		UserID:       entry.UserID,
		Description:  entry.Description,
		Details:      entry.Details,
		Status:       string(entry.Status),
		ErrorMessage: entry.ErrorMessage,
		SourceIP:     entry.SourceIP,
		CreatedAt:    entry.CreatedAt,
	}
}

func mapAuditListToResponses(entries []model.AuditLog) []model.AuditLogResponse {
	responses := make([]model.AuditLogResponse, len(entries))
	for i := range entries {
		responses[i] = mapAuditToResponse(&entries[i])
	}
	return responses
}
