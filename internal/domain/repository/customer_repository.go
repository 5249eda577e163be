package repository

import (
	"context"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// There is deliberately no read-then-set path for points: accrual happens
// as an atomic increment inside the invoice save transaction.
type CustomerRepository interface {
	// GetByMobile returns the customer for a mobile number, or nil when absent.
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	// Upsert inserts a customer or updates name/dob in place; email is only
	// overwritten when a non-empty value is supplied. Points are never touched.
	Upsert(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	// List returns customers with page-based pagination and optional substring search.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// SearchNamePrefix returns distinct customer names matching a case-insensitive prefix.
	SearchNamePrefix(ctx context.Context, prefix string, limit int) ([]string, error)
	// SearchMobilePrefix returns distinct mobile numbers matching a prefix.
	SearchMobilePrefix(ctx context.Context, prefix string, limit int) ([]string, error)
}
