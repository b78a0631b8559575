package handler

import (
	"context"
	"time"

	"kartpay/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCustomerService is a mock implementation of service.CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Register(ctx context.Context, req *model.CustomerRegistrationRequest) (*model.CustomerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerResponse), args.Error(1)
}

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetAll(ctx context.Context) ([]model.ProductResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductResponse), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductResponse), args.Error(1)
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddToCart(ctx context.Context, customerID int64, req *model.AddToCartRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, customerID int64) (*model.OrderResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

// MockCheckoutService is a mock implementation of service.CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) ProcessCheckout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) GetCheckoutStatus(ctx context.Context, customerID, orderID int64) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, customerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

// MockTokenizationService is a mock implementation of service.TokenizationService.
type MockTokenizationService struct {
	mock.Mock
}

func (m *MockTokenizationService) CreateToken(ctx context.Context, req *model.TokenizationRequest) (*model.TokenizationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenizationResponse), args.Error(1)
}

// MockAuditService is a mock implementation of service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogEvent(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any, status model.EventStatus, errorMessage string) {
	m.Called(ctx, eventTypeName, entityType, entityID, userID, description, details, status, errorMessage)
}

func (m *MockAuditService) LogSuccess(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any) {
	m.Called(ctx, eventTypeName, entityType, entityID, userID, description, details)
}

func (m *MockAuditService) LogFailure(ctx context.Context, eventTypeName, entityType, entityID, userID, description, errorMessage string, details any) {
	m.Called(ctx, eventTypeName, entityType, entityID, userID, description, errorMessage, details)
}

func (m *MockAuditService) LogRetry(ctx context.Context, eventTypeName, entityType, entityID, userID, description string, details any) {
	m.Called(ctx, eventTypeName, entityType, entityID, userID, description, details)
}

func (m *MockAuditService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByEntityID(ctx context.Context, entityID string) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByEventType(ctx context.Context, eventType model.EventType, limit, offset int) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, eventType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByEntityType(ctx context.Context, entityType string, limit, offset int) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, entityType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByStatus(ctx context.Context, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByDateRange(ctx context.Context, start, end time.Time, limit, offset int) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, start, end, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}

func (m *MockAuditService) ListByEventTypeAndStatus(ctx context.Context, eventType model.EventType, status model.EventStatus, limit, offset int) ([]model.AuditLogResponse, error) {
	args := m.Called(ctx, eventType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogResponse), args.Error(1)
}
