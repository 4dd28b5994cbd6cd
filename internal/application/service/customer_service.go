package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukahub/duka-api/internal/domain/entity"
	"github.com/dukahub/duka-api/internal/domain/repository"
	infraRepo "github.com/dukahub/duka-api/internal/infrastructure/repository"
	"github.com/dukahub/duka-api/pkg/apperror"
	"github.com/dukahub/duka-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	TaxNumber   string
	CreditLimit decimal.Decimal
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}
	if input.Name == "" || input.Phone == "" {
		return nil, apperror.NewBadRequestError("Customer name and phone are required")
	}
	if input.CreditLimit.IsNegative() {
		return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
	}

	existing, err := s.customerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this phone number already exists")
	}

	customer := &entity.Customer{
		ShopID:      shopID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		TaxNumber:   input.TaxNumber,
		CreditLimit: input.CreditLimit,
		IsActive:    true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if input.CreditLimit.IsNegative() {
		return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	customer.Email = input.Email
	customer.Address = input.Address
	customer.TaxNumber = input.TaxNumber
	customer.CreditLimit = input.CreditLimit

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers returns customers for the current shop
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, params, search, includeInactive)
}

// DeleteCustomer removes a customer. A customer referenced by sales is
// deactivated instead of deleted so sale history keeps resolving.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	hasSales, err := s.customerRepo.HasSales(ctx, id)
	if err != nil {
		return err
	}
	if hasSales {
		customer.IsActive = false
		return s.customerRepo.Update(ctx, customer)
	}
	return s.customerRepo.Delete(ctx, id)
}
