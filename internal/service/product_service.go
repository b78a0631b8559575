package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kartpay/internal/model"
	"kartpay/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// minPrice is the lowest accepted product price.
var minPrice = decimal.New(1, -2) // 0.01

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.ProductResponse, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", req.Name).Msg("creating product")

	now := time.Now()
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		SKU:         req.SKU,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product created successfully")

	return mapProductToResponse(product), nil
}

// GetAll retrieves all active products.
func (s *productService) GetAll(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.productRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	responses := make([]model.ProductResponse, len(products))
	for i := range products {
		responses[i] = *mapProductToResponse(&products[i])
	}

	return responses, nil
}

// GetByID retrieves a single active product.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	product, err := s.productRepo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound(id)
	}

	return mapProductToResponse(product), nil
}

// Update replaces the mutable fields of an existing product.
func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductResponse, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("updating product")

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound(id)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category
	product.SKU = req.SKU
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product updated successfully")

	return mapProductToResponse(product), nil
}

func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return fmt.Errorf("product request is nil")
	}

	if strings.TrimSpace(req.Name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "name is required")
	}

	if req.Price.LessThan(minPrice) {
		return model.NewDomainError(model.ErrCodeMissingField, "price must be at least 0.01")
	}

	if req.Stock < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "stock cannot be negative")
	}

	return nil
}

func mapProductToResponse(p *model.Product) *model.ProductResponse {
	return &model.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		SKU:         p.SKU,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
