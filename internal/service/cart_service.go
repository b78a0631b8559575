package service

import (
	"context"
	"fmt"

	"time"

	"kartpay/internal/model"
	"kartpay/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart adds a product to the customer's active cart. The cart is
// created on first use; adding a product already in the cart merges into
// the existing row. All writes run in a single transaction.
func (s *cartService) AddToCart(ctx context.Context, customerID int64, req *model.AddToCartRequest) (*model.OrderResponse, error) {
	s.logger.Info().
		Int64("customer_id", customerID).
		Int64("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("adding product to cart")

	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound(customerID)
	}

	product, err := s.productRepo.GetActiveByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound(req.ProductID)
	}

	if product.Stock < req.Quantity {
		return nil, model.ErrInsufficientStock(product.Name, product.Stock, req.Quantity)
	}

	cart, err := s.orderRepo.GetActiveCartByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	if cart == nil {
		s.logger.Info().Int64("customer_id", customerID).Msg("creating new cart")
		cart = &model.Order{
			CustomerID:  customerID,
			TotalAmount: decimal.Zero,
			Status:      model.OrderStatusCart,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err = s.orderRepo.CreateCart(ctx, tx, cart); err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
	}

	var existing *model.OrderItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			existing = &cart.Items[i]
			break
		}
	}

	if existing != nil {
		newQuantity := existing.Quantity + req.Quantity

		if product.Stock < newQuantity {
			err = model.ErrInsufficientStock(product.Name, product.Stock, newQuantity)
			return nil, err
		}

		existing.Quantity = newQuantity
		existing.Subtotal = existing.UnitPrice.Mul(decimal.NewFromInt(int64(newQuantity)))
		if err = s.orderRepo.UpdateItem(ctx, tx, existing); err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
		s.logger.Info().Int("quantity", newQuantity).Msg("updated existing cart item")
	} else {
		item := model.OrderItem{
			OrderID:     cart.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		if err = s.orderRepo.InsertItem(ctx, tx, &item); err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
		cart.Items = append(cart.Items, item)
		s.logger.Info().Msg("added new item to cart")
	}

	cart.RecomputeTotal()
	cart.UpdatedAt = now
	if err = s.orderRepo.UpdateTotal(ctx, tx, cart.ID, cart.TotalAmount, cart.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", cart.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Int64("customer_id", customerID).
		Int64("order_id", cart.ID).
		Str("total", cart.TotalAmount.String()).
		Msg("cart updated successfully")

	return mapOrderToResponse(cart, customer), nil
}

// GetCart retrieves the customer's active cart.
func (s *cartService) GetCart(ctx context.Context, customerID int64) (*model.OrderResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound(customerID)
	}

	cart, err := s.orderRepo.GetActiveCartByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrOrderNotFound(fmt.Sprintf("No active cart found for customer %d", customerID))
	}

	return mapOrderToResponse(cart, customer), nil
}

func mapOrderToResponse(order *model.Order, customer *model.Customer) *model.OrderResponse {
	items := make([]model.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = mapItemToResponse(item)
	}

	return &model.OrderResponse{
		ID:           order.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.FullName(),
		Items:        items,
		TotalAmount:  order.TotalAmount,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func mapItemToResponse(item model.OrderItem) model.OrderItemResponse {
	return model.OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    item.Subtotal,
	}
}
