package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kartpay/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogEvent_RecordsEntry(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	mockRepo.On("Insert", ctx, mock.AnythingOfType("*model.AuditLog")).Return(nil)

	svc.LogSuccess(ctx, "ORDER_CREATED", "ORDER", "10", "1", "Order created", map[string]int{"items": 2})

	require.Len(t, mockRepo.Calls, 1)
	entry := mockRepo.Calls[0].Arguments.Get(1).(*model.AuditLog)
	assert.Equal(t, model.EventOrderCreated, entry.EventType)
	assert.Equal(t, "ORDER", entry.EntityType)
	assert.Equal(t, "10", entry.EntityID)
	assert.Equal(t, model.EventStatusSuccess, entry.Status)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.JSONEq(t, `{"items": 2}`, entry.Details)
}

func TestLogEvent_InsertFailureIsSwallowed(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	mockRepo.On("Insert", ctx, mock.AnythingOfType("*model.AuditLog")).Return(errors.New("connection refused"))

	// Must not panic or surface the error.
	svc.LogFailure(ctx, "PAYMENT_REJECTED", "PAYMENT", "77", "1", "Payment rejected", "declined", nil)

	mockRepo.AssertExpectations(t)
}

func TestLogEvent_UnknownEventTypeIsDropped(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	svc.LogSuccess(ctx, "NOT_A_REAL_EVENT", "ORDER", "10", "1", "bogus", nil)

	mockRepo.AssertNotCalled(t, "Insert")
}

func TestLogRetry_Status(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	mockRepo.On("Insert", ctx, mock.AnythingOfType("*model.AuditLog")).Return(nil)

	svc.LogRetry(ctx, "PAYMENT_ATTEMPTED", "PAYMENT", "77", "1", "Attempt 1/3 rejected", nil)

	entry := mockRepo.Calls[0].Arguments.Get(1).(*model.AuditLog)
	assert.Equal(t, model.EventStatusRetry, entry.Status)
	assert.Empty(t, entry.ErrorMessage)
}

func TestAuditGetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	resp, err := svc.GetByID(ctx, id)

	require.Error(t, err)
	assert.Nil(t, resp)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeAuditLogNotFound, domainErr.Code)
}

func TestAuditListByEventType_MapsEntries(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	entries := []model.AuditLog{
		{ID: uuid.New(), EventType: model.EventPaymentApproved, EntityType: "PAYMENT", EntityID: "77", Status: model.EventStatusSuccess, CreatedAt: time.Now()},
		{ID: uuid.New(), EventType: model.EventPaymentApproved, EntityType: "PAYMENT", EntityID: "78", Status: model.EventStatusSuccess, CreatedAt: time.Now()},
	}
	mockRepo.On("ListByEventType", ctx, model.EventPaymentApproved, 20, 0).Return(entries, nil)

	resp, err := svc.ListByEventType(ctx, model.EventPaymentApproved, 20, 0)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "PAYMENT_APPROVED", resp[0].EventType)
	assert.Equal(t, "77", resp[0].EntityID)
}

func TestAuditListByDateRange_PassesBounds(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockAuditRepository)
	svc := NewAuditService(mockRepo, logger)

	start := time.Now().Add(-time.Hour)
	end := time.Now()
	mockRepo.On("ListByDateRange", ctx, start, end, 50, 50).Return([]model.AuditLog{}, nil)

	resp, err := svc.ListByDateRange(ctx, start, end, 50, 50)

	require.NoError(t, err)
	assert.Empty(t, resp)
	mockRepo.AssertExpectations(t)
}
