package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Invoice is an append-only record of a completed sale. The customer
// fields are a snapshot taken at save time, not a strong foreign key:
// walk-in sales carry empty customer fields and a NULL customer_id.
// Invoices are immutable once created.
type Invoice struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName   string     `gorm:"size:255" json:"customer_name"`
	CustomerMobile string     `gorm:"size:10;index" json:"customer_mobile"`
	CustomerEmail  string     `gorm:"size:255" json:"customer_email"`
	EmployeeID     *uuid.UUID `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	Cashier        string     `gorm:"size:50" json:"cashier,omitempty"`
	SubTotal       int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Discount       int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total          int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	BillContent    string     `gorm:"type:text" json:"bill_content,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(i),
		SubTotal: float64(i.SubTotal) / 100,
		Discount: float64(i.Discount) / 100,
		Total:    float64(i.Total) / 100,
	})
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a frozen copy of a cart line item. Later mutation of
// the live cart never affects a saved invoice.
type InvoiceItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	InvoiceID uint   `gorm:"not null;index" json:"invoice_id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64  `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ii InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(ii),
		UnitPrice: float64(ii.UnitPrice) / 100,
		Total:     float64(ii.Total) / 100,
	})
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
