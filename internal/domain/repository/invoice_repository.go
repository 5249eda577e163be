package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/pkg/pagination"
)

// PointAccrual asks the invoice save transaction to credit loyalty
// points to a customer as a single atomic increment.
type PointAccrual struct {
	Mobile string
	Points int
}

// SalesReport aggregates the ledger over a date range. Monetary fields
// are in cents.
type SalesReport struct {
	InvoiceCount  int64     `json:"invoice_count"`
	TotalSales    int64     `json:"-"`
	TotalDiscount int64     `json:"-"`
	FinalSales    int64     `json:"-"`
	TopItems      []TopItem `json:"top_items"`
}

// MarshalJSON renders the monetary aggregates as decimal amounts.
func (r SalesReport) MarshalJSON() ([]byte, error) {
	type Alias SalesReport
	return json.Marshal(&struct {
		Alias
		TotalSales    float64 `json:"total_sales"`
		TotalDiscount float64 `json:"total_discount"`
		FinalSales    float64 `json:"final_sales"`
	}{
		Alias:         Alias(r),
		TotalSales:    float64(r.TotalSales) / 100,
		TotalDiscount: float64(r.TotalDiscount) / 100,
		FinalSales:    float64(r.FinalSales) / 100,
	})
}

// TopItem is a best-selling item row in a sales report.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Sales    int64  `json:"-"` // cents
}

// MarshalJSON renders the sales column as a decimal amount.
func (t TopItem) MarshalJSON() ([]byte, error) {
	type Alias TopItem
	return json.Marshal(&struct {
		Alias
		Sales float64 `json:"sales"`
	}{
		Alias: Alias(t),
		Sales: float64(t.Sales) / 100,
	})
}

// InvoiceRepository defines the append-only invoice ledger contract.
type InvoiceRepository interface {
	// Create persists the invoice, its items, and the optional point
	// accrual in one transaction. Either everything is recorded or
	// nothing is. The sequential id is assigned by the database and set
	// on the passed invoice.
	Create(ctx context.Context, invoice *entity.Invoice, accrual *PointAccrual) error
	// GetByID returns the invoice with its items, or nil when absent.
	GetByID(ctx context.Context, id uint) (*entity.Invoice, error)
	// ListByMobile returns invoices whose customer snapshot matches the
	// mobile number, newest first. An unknown mobile yields an empty
	// slice, not an error.
	ListByMobile(ctx context.Context, mobile string, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
	// SalesReport aggregates invoices created in [from, to).
	SalesReport(ctx context.Context, from, to time.Time) (*SalesReport, error)
}
