package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"kartpay/internal/model"
	"kartpay/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AuditHandler handles the read-only audit query API.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("handler", "audit").Logger(),
	}
}

// Query routes GET /api/v1/audit/... requests by path segment.
func (h *AuditHandler) Query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/audit/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] == "date-range":
		h.listByDateRange(w, r)
	case len(parts) == 2 && parts[0] == "entity":
		h.listByEntityID(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "event-type":
		h.listByEventType(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "entity-type":
		h.listByEntityType(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "user":
		h.listByUserID(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "status":
		h.listByStatus(w, r, parts[1])
	case len(parts) == 1 && parts[0] != "":
		h.getByID(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, model.ErrCodeAuditLogNotFound, "unknown audit query", h.logger)
	}
}

func (h *AuditHandler) getByID(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid audit log ID format", h.logger)
		return
	}

	entry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *AuditHandler) listByEntityID(w http.ResponseWriter, r *http.Request, entityID string) {
	entries, err := h.service.ListByEntityID(r.Context(), entityID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) listByEventType(w http.ResponseWriter, r *http.Request, eventType string) {
	if !model.ValidEventType(eventType) {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "unknown event type", h.logger)
		return
	}

	limit, offset := pagination(r)

	// Optional status filter combines with the event type.
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		if !model.ValidEventStatus(statusStr) {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "unknown event status", h.logger)
			return
		}
		entries, err := h.service.ListByEventTypeAndStatus(r.Context(), model.EventType(eventType), model.EventStatus(statusStr), limit, offset)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := h.service.ListByEventType(r.Context(), model.EventType(eventType), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) listByEntityType(w http.ResponseWriter, r *http.Request, entityType string) {
	limit, offset := pagination(r)

	entries, err := h.service.ListByEntityType(r.Context(), entityType, limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) listByUserID(w http.ResponseWriter, r *http.Request, userID string) {
	limit, offset := pagination(r)

	entries, err := h.service.ListByUserID(r.Context(), userID, limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) listByStatus(w http.ResponseWriter, r *http.Request, statusStr string) {
	if !model.ValidEventStatus(statusStr) {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "unknown event status", h.logger)
		return
	}

	limit, offset := pagination(r)

	entries, err := h.service.ListByStatus(r.Context(), model.EventStatus(statusStr), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) listByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "startDate must be an RFC 3339 timestamp", h.logger)
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "endDate must be an RFC 3339 timestamp", h.logger)
		return
	}

	if end.Before(start) {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "endDate must not be before startDate", h.logger)
		return
	}

	limit, offset := pagination(r)

	entries, err := h.service.ListByDateRange(r.Context(), start, end, limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// pagination reads the page/size query parameters with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	page := 0
	size := defaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			size = n
		}
	}

	return size, page * size
}
