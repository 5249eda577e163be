package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopcart/pos-api/internal/domain/entity"
	domainRepo "github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/pagination"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "mobile = ?", mobile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Upsert inserts a new customer or updates name/dob of an existing one.
// Email is only overwritten when a non-empty value is supplied; the
// point balance is never touched on this path.
func (r *customerRepository) Upsert(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	var existing entity.Customer
	err := r.db.WithContext(ctx).First(&existing, "mobile = ?", customer.Mobile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
			return nil, err
		}
		return customer, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name": customer.Name,
		"dob":  customer.DOB,
	}
	if customer.Email != nil && *customer.Email != "" {
		updates["email"] = customer.Email
	}

	if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByMobile(ctx, customer.Mobile)
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})

	if search != "" {
		query = query.Where("name ILIKE ? OR mobile LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) SearchNamePrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	var names []string
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Distinct("name").
		Where("LOWER(name) LIKE LOWER(?)", prefix+"%").
		Order("name").
		Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

func (r *customerRepository) SearchMobilePrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	var mobiles []string
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Distinct("mobile").
		Where("mobile LIKE ?", prefix+"%").
		Order("mobile").
		Limit(limit).
		Pluck("mobile", &mobiles).Error
	return mobiles, err
}
