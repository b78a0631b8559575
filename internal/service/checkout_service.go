package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"kartpay/internal/config"
	"kartpay/internal/model"
	"kartpay/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService. It turns the active cart into
// a pending order, creates the payment record and drives the bounded retry
// loop against the simulated gateway. Every persistence write runs in one
// transaction that is committed even when the retries are exhausted, so the
// terminal CANCELLED/FAILED_FINAL state survives the returned error. Audit
// writes bypass the transaction entirely.
type checkoutService struct {
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	audit        AuditService
	email        EmailSender
	cfg          config.PaymentConfig
	logger       zerolog.Logger

	// Injection points for tests: the approval draw and the inter-attempt
	// pause.
	randFloat func() float64
	sleep     func(time.Duration)
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	audit AuditService,
	email EmailSender,
	cfg config.PaymentConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		audit:        audit,
		email:        email,
		cfg:          cfg,
		logger:       logger.With().Str("service", "checkout").Logger(),
		randFloat:    rand.Float64,
		sleep:        time.Sleep,
	}
}

// ProcessCheckout validates the customer and active cart, transitions the
// cart to PENDING with the request's shipping details, creates a PROCESSING
// payment and runs the retry loop. On exhausted retries the terminal state
// is committed before the payment-failed error is returned.
func (s *checkoutService) ProcessCheckout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	s.logger.Info().Int64("customer_id", req.CustomerID).Msg("processing checkout")

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound(req.CustomerID)
	}

	cart, err := s.orderRepo.GetActiveCartByCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	if cart == nil {
		return nil, model.ErrOrderNotFound(fmt.Sprintf("No active cart found for customer %d", req.CustomerID))
	}
	if len(cart.Items) == 0 {
		return nil, model.ErrOrderNotFound("Cart is empty. Cannot proceed with checkout.")
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	// Rolled back only on infrastructure errors before the commit; the
	// payment-failed path commits first.
	committed := false
	defer func() {
		if err != nil && !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	cart.ShippingAddress = req.ShippingAddress
	cart.ShippingCity = req.ShippingCity
	cart.ShippingState = req.ShippingState
	cart.ShippingZipCode = req.ShippingZipCode
	cart.ShippingCountry = req.ShippingCountry
	cart.Status = model.OrderStatusPending
	cart.UpdatedAt = now

	if err = s.orderRepo.UpdateForCheckout(ctx, tx, cart); err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	orderID := strconv.FormatInt(cart.ID, 10)
	customerID := strconv.FormatInt(customer.ID, 10)

	s.audit.LogSuccess(ctx, string(model.EventOrderCreated), "ORDER", orderID, customerID,
		"Order created for checkout", nil)

	payment := &model.Payment{
		OrderID:       cart.ID,
		TokenizedCard: req.TokenizedCard,
		Amount:        cart.TotalAmount,
		Status:        model.PaymentStatusProcessing,
		AttemptCount:  0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err = s.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	s.audit.LogSuccess(ctx, string(model.EventPaymentInitiated), "PAYMENT", strconv.FormatInt(payment.ID, 10), customerID,
		"Payment processing initiated", nil)

	loopErr := s.processPaymentWithRetries(ctx, tx, customer, cart, payment)

	var domainErr *model.DomainError
	if loopErr != nil && !errors.As(loopErr, &domainErr) {
		err = loopErr
		return nil, fmt.Errorf("checkout failed: %w", loopErr)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", cart.ID).Msg("failed to commit checkout transaction")
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	committed = true

	if loopErr != nil {
		// Terminal CANCELLED/FAILED_FINAL state is already committed; the
		// error is informational for the caller.
		return nil, loopErr
	}

	updatedOrder, err := s.orderRepo.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	if updatedOrder == nil {
		updatedOrder = cart
	}

	updatedPayment, err := s.paymentRepo.GetByOrderID(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	if updatedPayment == nil {
		updatedPayment = payment
	}

	return buildCheckoutResponse(updatedOrder, customer, updatedPayment), nil
}

// processPaymentWithRetries runs the bounded authorization loop. Each
// iteration is a Bernoulli draw against the configured approval
// probability. A returned *model.DomainError means the retries were
// exhausted; any other error is an infrastructure failure.
func (s *checkoutService) processPaymentWithRetries(ctx context.Context, tx pgx.Tx, customer *model.Customer, order *model.Order, payment *model.Payment) error {
	s.logger.Info().Int64("order_id", order.ID).Msg("starting payment processing with retries")

	orderID := strconv.FormatInt(order.ID, 10)
	paymentID := strconv.FormatInt(payment.ID, 10)
	customerID := strconv.FormatInt(customer.ID, 10)

	attempt := 0
	approved := false

	for attempt < s.cfg.MaxRetryAttempts && !approved {
		attempt++
		payment.AttemptCount = attempt

		s.logger.Info().
			Int("attempt", attempt).
			Int("max_attempts", s.cfg.MaxRetryAttempts).
			Int64("order_id", order.ID).
			Msg("payment attempt")

		if s.randFloat() < s.cfg.ApprovalProbability {
			s.logger.Info().Int("attempt", attempt).Int64("order_id", order.ID).Msg("payment approved")

			payment.Status = model.PaymentStatusApproved
			payment.UpdatedAt = time.Now()
			if err := s.paymentRepo.Update(ctx, tx, payment); err != nil {
				return err
			}

			s.audit.LogSuccess(ctx, string(model.EventPaymentApproved), "PAYMENT", paymentID, customerID,
				fmt.Sprintf("Payment approved successfully on attempt %d", attempt), nil)

			order.Status = model.OrderStatusConfirmed
			order.UpdatedAt = time.Now()
			if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, order.Status, order.UpdatedAt); err != nil {
				return err
			}

			s.audit.LogSuccess(ctx, string(model.EventOrderStatusChanged), "ORDER", orderID, customerID,
				"Order confirmed after approved payment", nil)

			s.decreaseProductStock(ctx, tx, order)

			s.email.SendPaymentApproved(ctx, customer.Email, customer.FullName(), orderID, payment.Amount.String())

			approved = true
		} else {
			failureReason := fmt.Sprintf("Payment declined by gateway (attempt %d/%d)", attempt, s.cfg.MaxRetryAttempts)
			s.logger.Warn().
				Int("attempt", attempt).
				Int("max_attempts", s.cfg.MaxRetryAttempts).
				Int64("order_id", order.ID).
				Msg("payment rejected")
			payment.FailureReason = failureReason

			s.audit.LogRetry(ctx, string(model.EventPaymentAttempted), "PAYMENT", paymentID, customerID,
				fmt.Sprintf("Payment attempt rejected %d/%d", attempt, s.cfg.MaxRetryAttempts), nil)

			if attempt < s.cfg.MaxRetryAttempts {
				s.logger.Debug().Dur("delay", s.cfg.RetryDelay).Msg("waiting before retry")
				s.sleep(s.cfg.RetryDelay)
			} else {
				s.logger.Error().Int64("order_id", order.ID).Msg("all payment attempts failed")

				payment.Status = model.PaymentStatusFailedFinal
				payment.UpdatedAt = time.Now()
				if err := s.paymentRepo.Update(ctx, tx, payment); err != nil {
					return err
				}

				order.Status = model.OrderStatusCancelled
				order.UpdatedAt = time.Now()
				if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, order.Status, order.UpdatedAt); err != nil {
					return err
				}

				// The audit recorder swallows its own failures, so these
				// cannot block the cancellation flow.
				s.audit.LogFailure(ctx, string(model.EventPaymentRejected), "PAYMENT", paymentID, customerID,
					fmt.Sprintf("Payment rejected after %d attempts", s.cfg.MaxRetryAttempts), failureReason, nil)
				s.audit.LogSuccess(ctx, string(model.EventOrderCancelled), "ORDER", orderID, customerID,
					"Order cancelled due to payment failure", nil)

				s.email.SendPaymentFailed(ctx, customer.Email, customer.FullName(), orderID, failureReason)

				return model.ErrPaymentFailed(fmt.Sprintf(
					"Payment processing failed after %d attempts. Please contact support.", s.cfg.MaxRetryAttempts))
			}
		}
	}

	return nil
}

// decreaseProductStock reduces stock for every line item of an approved
// order. Items whose decrement would go negative are logged and skipped;
// no error here ever aborts the checkout, the approval is already final.
func (s *checkoutService) decreaseProductStock(ctx context.Context, tx pgx.Tx, order *model.Order) {
	s.logger.Info().Int64("order_id", order.ID).Msg("decreasing product stock")

	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Int64("product_id", item.ProductID).Msg("failed to load product for stock decrement")
			continue
		}
		if product == nil {
			s.logger.Error().Int64("product_id", item.ProductID).Msg("product missing during stock decrement")
			continue
		}

		newStock := product.Stock - item.Quantity
		if newStock < 0 {
			s.logger.Error().
				Int64("product_id", product.ID).
				Int("required", item.Quantity).
				Int("available", product.Stock).
				Msg("insufficient stock during decrement, leaving stock untouched")
			continue
		}

		if err := s.productRepo.UpdateStock(ctx, tx, product.ID, newStock, time.Now()); err != nil {
			s.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to decrement product stock")
			continue
		}

		s.logger.Info().Int64("product_id", product.ID).Int("new_stock", newStock).Msg("product stock updated")
	}
}

// GetCheckoutStatus assembles the checkout projection for an existing
// order. Read-only.
func (s *checkoutService) GetCheckoutStatus(ctx context.Context, customerID, orderID int64) (*model.CheckoutResponse, error) {
	s.logger.Info().Int64("customer_id", customerID).Int64("order_id", orderID).Msg("fetching checkout status")

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout status: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound(customerID)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound(fmt.Sprintf("Order with ID %d not found", orderID))
	}

	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout status: %w", err)
	}
	if payment == nil {
		return nil, model.ErrPaymentFailed(fmt.Sprintf("Payment not found for order %d", orderID))
	}

	return buildCheckoutResponse(order, customer, payment), nil
}

func buildCheckoutResponse(order *model.Order, customer *model.Customer, payment *model.Payment) *model.CheckoutResponse {
	items := make([]model.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = mapItemToResponse(item)
	}

	return &model.CheckoutResponse{
		OrderID:      order.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.FullName(),
		Items:        items,
		TotalAmount:  order.TotalAmount,
		OrderStatus:  string(order.Status),
		Payment: model.PaymentResponse{
			ID:            payment.ID,
			OrderID:       payment.OrderID,
			Amount:        payment.Amount,
			Status:        string(payment.Status),
			AttemptCount:  payment.AttemptCount,
			FailureReason: payment.FailureReason,
			CreatedAt:     payment.CreatedAt,
			UpdatedAt:     payment.UpdatedAt,
		},
		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingState:   order.ShippingState,
		ShippingZipCode: order.ShippingZipCode,
		ShippingCountry: order.ShippingCountry,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
