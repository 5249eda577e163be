package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shopcart/pos-api/internal/domain/entity"
	domainRepo "github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/pagination"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create persists the invoice, its items, and the point accrual in a
// single transaction. The accrual is an atomic in-place increment so
// concurrent sales against the same customer cannot lose updates.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice, accrual *domainRepo.PointAccrual) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}

		if accrual != nil && accrual.Points > 0 {
			result := tx.Model(&entity.Customer{}).
				Where("mobile = ?", accrual.Mobile).
				Update("points", gorm.Expr("points + ?", accrual.Points))
			if result.Error != nil {
				return result.Error
			}
		}

		return nil
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListByMobile(ctx context.Context, mobile string, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("customer_mobile = ?", mobile)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Preload("Items").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) SalesReport(ctx context.Context, from, to time.Time) (*domainRepo.SalesReport, error) {
	report := &domainRepo.SalesReport{}

	row := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("COUNT(*), COALESCE(SUM(sub_total), 0), COALESCE(SUM(discount), 0), COALESCE(SUM(total), 0)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Row()
	if err := row.Scan(&report.InvoiceCount, &report.TotalSales, &report.TotalDiscount, &report.FinalSales); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Model(&entity.InvoiceItem{}).
		Select("invoice_items.name, SUM(invoice_items.quantity) AS quantity, SUM(invoice_items.total) AS sales").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.created_at >= ? AND invoices.created_at < ?", from, to).
		Group("invoice_items.name").
		Order("quantity DESC").
		Limit(5).
		Scan(&report.TopItems).Error
	if err != nil {
		return nil, err
	}

	return report, nil
}
