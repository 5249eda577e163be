package service

import (
	"context"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/apperror"
	"github.com/shopcart/pos-api/pkg/pagination"
	"github.com/shopcart/pos-api/pkg/validator"
)

// CustomerService manages loyalty customer records keyed by mobile
// number.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// UpsertCustomerInput represents a customer identity capture.
type UpsertCustomerInput struct {
	Name   string
	Mobile string
	DOB    string
	Email  string
}

// Upsert validates the identity and creates or updates the customer
// record. The point balance is never modified here.
func (s *CustomerService) Upsert(ctx context.Context, input *UpsertCustomerInput) (*entity.Customer, error) {
	if appErr := validator.Identity(input.Name, input.Mobile, input.DOB, input.Email); appErr != nil {
		return nil, appErr
	}

	customer := &entity.Customer{
		Name:   input.Name,
		Mobile: input.Mobile,
	}
	if input.DOB != "" {
		dob := input.DOB
		customer.DOB = &dob
	}
	if input.Email != "" {
		email := input.Email
		customer.Email = &email
	}

	customer, err := s.customerRepo.Upsert(ctx, customer)
	if err != nil {
		return nil, apperror.NewPersistenceError("Failed to save customer", err)
	}
	return customer, nil
}

// Get looks up a customer by mobile number.
func (s *CustomerService) Get(ctx context.Context, mobile string) (*entity.Customer, error) {
	if fieldErr := validator.Mobile(mobile); fieldErr != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{*fieldErr})
	}

	customer, err := s.customerRepo.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// List returns customers ordered by name, optionally filtered by a
// name or mobile search term.
func (s *CustomerService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()

	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Suggestions returns distinct name or mobile prefixes for checkout
// autocomplete. Unknown fields fall back to name.
func (s *CustomerService) Suggestions(ctx context.Context, field, prefix string, limit int) ([]string, error) {
	if prefix == "" {
		return []string{}, nil
	}
	if field == "mobile" {
		return s.customerRepo.SearchMobilePrefix(ctx, prefix, limit)
	}
	return s.customerRepo.SearchNamePrefix(ctx, prefix, limit)
}
