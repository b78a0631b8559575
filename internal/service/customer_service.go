package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kartpay/internal/model"
	"kartpay/internal/repository"

	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	audit        AuditService
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, audit AuditService, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		audit:        audit,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// Register registers a new customer with unique email and phone number.
// Email is normalised to lower case before the uniqueness check and store.
func (s *customerService) Register(ctx context.Context, req *model.CustomerRegistrationRequest) (*model.CustomerResponse, error) {
	if err := validateRegistrationRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	s.logger.Info().Str("email", email).Msg("registering customer")

	exists, err := s.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	if exists {
		s.logger.Warn().Str("email", email).Msg("attempted to register with existing email")
		return nil, model.ErrDuplicateCustomer(fmt.Sprintf("Email '%s' is already registered", req.Email))
	}

	exists, err = s.customerRepo.ExistsByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	if exists {
		s.logger.Warn().Str("phone_number", req.PhoneNumber).Msg("attempted to register with existing phone number")
		return nil, model.ErrDuplicateCustomer(fmt.Sprintf("Phone number '%s' is already registered", req.PhoneNumber))
	}

	now := time.Now()
	customer := &model.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	customerID := strconv.FormatInt(customer.ID, 10)
	s.audit.LogSuccess(ctx, string(model.EventCustomerRegistered), "CUSTOMER", customerID, customerID,
		"Customer registered", nil)

	s.logger.Info().
		Int64("customer_id", customer.ID).
		Str("email", customer.Email).
		Msg("customer registered successfully")

	return mapCustomerToResponse(customer), nil
}

func validateRegistrationRequest(req *model.CustomerRegistrationRequest) error {
	if req == nil {
		return fmt.Errorf("registration request is nil")
	}

	required := []struct {
		name  string
		value string
	}{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"phoneNumber", req.PhoneNumber},
		{"address", req.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("%s is required", f.name))
		}
	}

	if !strings.Contains(req.Email, "@") {
		return model.NewDomainError(model.ErrCodeMissingField, "email is not valid")
	}

	return nil
}

func mapCustomerToResponse(c *model.Customer) *model.CustomerResponse {
	return &model.CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		ZipCode:     c.ZipCode,
		Country:     c.Country,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
