package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an immutable, append-only event record. Rows are never
// updated or deleted.
type AuditLog struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	EventType    EventType   `json:"eventType" db:"event_type"`
	EntityType   string      `json:"entityType" db:"entity_type"`
	EntityID     string      `json:"entityId" db:"entity_id"`
	UserID       string      `json:"userId,omitempty" db:"user_id"`
	Description  string      `json:"description" db:"description"`
	Details      string      `json:"details,omitempty" db:"details"`
	Status       EventStatus `json:"status" db:"status"`
	ErrorMessage string      `json:"errorMessage,omitempty" db:"error_message"`
	SourceIP     string      `json:"sourceIp,omitempty" db:"source_ip"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

// AuditLogResponse is the projection returned by the audit read API.
type AuditLogResponse struct {
	ID           uuid.UUID `json:"id"`
	EventType    string    `json:"eventType"`
	EntityType   string    `json:"entityType"`
	EntityID     string    `json:"entityId"`
	UserID       string    `json:"userId,omitempty"`
	Description  string    `json:"description"`
	Details      string    `json:"details,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	SourceIP     string    `json:"sourceIp,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
