package service

import (
	"context"
	"errors"
	"testing"

	"kartpay/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddToCart_CreatesCartAndAddsItem(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	customer := testCustomer()
	product := &model.Product{
		ID: 5, Name: "Widget", Price: decimal.RequireFromString("19.99"),
		Stock: 10, Active: true,
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockTx := new(MockTx)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
	mockProductRepo.On("GetActiveByID", ctx, int64(5)).Return(product, nil)
	mockOrderRepo.On("GetActiveCartByCustomer", ctx, int64(1)).Return(nil, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("CreateCart", ctx, mockTx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.Order).ID = 10
		}).Return(nil)
	mockOrderRepo.On("InsertItem", ctx, mockTx, mock.AnythingOfType("*model.OrderItem")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.OrderItem).ID = 100
		}).Return(nil)
	mockOrderRepo.On("UpdateTotal", ctx, mockTx, int64(10), mock.Anything, mock.AnythingOfType("time.Time")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	resp, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 5, Quantity: 2})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, string(model.OrderStatusCart), resp.Status)
	require.Len(t, resp.Items, 1)
	assert.True(t, decimal.RequireFromString("39.98").Equal(resp.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("39.98").Equal(resp.TotalAmount))

	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestAddToCart_MergesExistingItem(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	customer := testCustomer()
	product := &model.Product{
		ID: 5, Name: "Widget", Price: decimal.RequireFromString("19.99"),
		Stock: 10, Active: true,
	}
	cart := testCart()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockTx := new(MockTx)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
	mockProductRepo.On("GetActiveByID", ctx, int64(5)).Return(product, nil)
	mockOrderRepo.On("GetActiveCartByCustomer", ctx, int64(1)).Return(cart, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("UpdateItem", ctx, mockTx, mock.AnythingOfType("*model.OrderItem")).Return(nil)
	mockOrderRepo.On("UpdateTotal", ctx, mockTx, int64(10), mock.Anything, mock.AnythingOfType("time.Time")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	resp, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 5, Quantity: 3})

	require.NoError(t, err)
	require.NotNil(t, resp)
	// 2 existing + 3 added, one merged row.
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("99.95").Equal(resp.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("99.95").Equal(resp.TotalAmount))

	mockOrderRepo.AssertNotCalled(t, "InsertItem")
	mockOrderRepo.AssertNotCalled(t, "CreateCart")
	mockOrderRepo.AssertExpectations(t)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	resp, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 5, Quantity: 0})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrInvalidQuantity, err)

	mockCustomerRepo.AssertNotCalled(t, "GetByID")
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	product := &model.Product{
		ID: 5, Name: "Widget", Price: decimal.RequireFromString("19.99"),
		Stock: 2, Active: true,
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(testCustomer(), nil)
	mockProductRepo.On("GetActiveByID", ctx, int64(5)).Return(product, nil)

	resp, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 5, Quantity: 3})

	require.Error(t, err)
	assert.Nil(t, resp)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	assert.Contains(t, domainErr.Message, "Widget")

	mockOrderRepo.AssertNotCalled(t, "BeginTx")
}

func TestAddToCart_MergeExceedingStock(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Cart already holds 2; stock of 4 cannot cover 2 + 3.
	product := &model.Product{
		ID: 5, Name: "Widget", Price: decimal.RequireFromString("19.99"),
		Stock: 4, Active: true,
	}
	cart := testCart()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockTx := new(MockTx)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(testCustomer(), nil)
	mockProductRepo.On("GetActiveByID", ctx, int64(5)).Return(product, nil)
	mockOrderRepo.On("GetActiveCartByCustomer", ctx, int64(1)).Return(cart, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	resp, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 5, Quantity: 3})

	require.Error(t, err)
	assert.Nil(t, resp)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	assert.True(t, mockTx.rolledBack)

	mockOrderRepo.AssertNotCalled(t, "UpdateItem")
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(testCustomer(), nil)
	mockProductRepo.On("GetActiveByID", ctx, int64(99)).Return(nil, nil)

	resp, err := svc.AddToCart(ctx, 1, &model.AddToCartRequest{ProductID: 99, Quantity: 1})

	require.Error(t, err)
	assert.Nil(t, resp)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeProductNotFound, domainErr.Code)
}

func TestGetCart_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cart := testCart()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(testCustomer(), nil)
	mockOrderRepo.On("GetActiveCartByCustomer", ctx, int64(1)).Return(cart, nil)

	resp, err := svc.GetCart(ctx, 1)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Ada Lovelace", resp.CustomerName)
	assert.Len(t, resp.Items, 1)
}

func TestGetCart_NoActiveCart(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)

	svc := NewCartService(mockOrderRepo, mockProductRepo, mockCustomerRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(testCustomer(), nil)
	mockOrderRepo.On("GetActiveCartByCustomer", ctx, int64(1)).Return(nil, nil)

	resp, err := svc.GetCart(ctx, 1)

	require.Error(t, err)
	assert.Nil(t, resp)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, model.ErrCodeOrderNotFound, domainErr.Code)
}
