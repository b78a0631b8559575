package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kartpay/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("GetAll", mock.Anything).Return([]model.ProductResponse{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("19.99")},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("5.00")},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	h.GetAll(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget")
	assert.Contains(t, rec.Body.String(), "Gadget")
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		path           string
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			path:           "/api/v1/products/1",
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found maps to 404",
			path:           "/api/v1/products/99",
			mockError:      model.ErrProductNotFound(99),
			expectService:  true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Non-numeric ID",
			path:           "/api/v1/products/abc",
			expectService:  false,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			h := NewProductHandler(mockService, logger)

			if tt.expectService {
				if tt.mockError != nil {
					mockService.On("GetByID", mock.Anything, mock.AnythingOfType("int64")).Return(nil, tt.mockError)
				} else {
					mockService.On("GetByID", mock.Anything, mock.AnythingOfType("int64")).Return(&model.ProductResponse{ID: 1, Name: "Widget"}, nil)
				}
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			h.GetByID(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.ProductRequest")).
		Return(&model.ProductResponse{ID: 5, Name: "Widget", Active: true}, nil)

	body := `{"name": "Widget", "price": "19.99", "stock": 10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Update(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("Update", mock.Anything, int64(5), mock.AnythingOfType("*model.ProductRequest")).
		Return(&model.ProductResponse{ID: 5, Name: "Widget v2"}, nil)

	body := `{"name": "Widget v2", "price": "24.99", "stock": 8}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/5", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Widget v2")
	mockService.AssertExpectations(t)
}
