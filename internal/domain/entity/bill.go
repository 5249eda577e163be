package entity

import (
	"encoding/json"

	"github.com/shopcart/pos-api/internal/domain/enum"
)

// LineItem is a single cart line. It is immutable once added: Total is
// derived from Quantity and UnitPrice at construction and never set
// independently.
type LineItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"-"` // cents
	Total     int64  `json:"-"` // cents
}

// NewLineItem builds a line item with its derived total. Input
// validation happens at the service boundary.
func NewLineItem(name string, quantity int, unitPriceCents int64) LineItem {
	return LineItem{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPriceCents,
		Total:     unitPriceCents * int64(quantity),
	}
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li LineItem) MarshalJSON() ([]byte, error) {
	type Alias LineItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(li),
		UnitPrice: float64(li.UnitPrice) / 100,
		Total:     float64(li.Total) / 100,
	})
}

// Subtotal sums the line totals of a cart. Zero for an empty cart.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Total
	}
	return sum
}

// BillPreview is a computed-but-not-persisted pricing result for the
// current cart. It is a value object composed at calculation time,
// never stored.
type BillPreview struct {
	SubTotal int64           `json:"-"` // cents
	Discount int64           `json:"-"` // cents
	Total    int64           `json:"-"` // cents
	Tier     enum.RewardTier `json:"reward_tier"`
	Text     string          `json:"bill_text"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b BillPreview) MarshalJSON() ([]byte, error) {
	type Alias BillPreview
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(b),
		SubTotal: float64(b.SubTotal) / 100,
		Discount: float64(b.Discount) / 100,
		Total:    float64(b.Total) / 100,
	})
}
