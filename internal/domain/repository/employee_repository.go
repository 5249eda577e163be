package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopcart/pos-api/internal/domain/entity"
)

// EmployeeRepository defines the interface for cashier account data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
}
