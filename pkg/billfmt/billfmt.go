// Package billfmt renders money values and the plain-text bill layout.
// The layout is reproduced character for character so bills exported or
// emailed by earlier releases stay comparable.
package billfmt

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "₹"

// Item is one rendered bill line. Monetary fields are in cents.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice int64
	Total     int64
}

// Bill carries everything needed to render the bill text.
type Bill struct {
	Items          []Item
	SubTotal       int64 // cents
	Discount       int64 // cents
	Total          int64 // cents
	CustomerName   string
	CustomerMobile string
	RewardTier     string
	Symbol         string
}

// FormatPrice renders cents as a currency symbol followed by a fixed
// two-decimal value.
func FormatPrice(symbol string, cents int64) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return symbol + strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

// Format renders the bill: banner, optional customer/tier block,
// column-aligned item table, separator rule, subtotal, discount (only
// when non-zero) and final amount.
func Format(b Bill) string {
	symbol := b.Symbol
	if symbol == "" {
		symbol = DefaultSymbol
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	sb.WriteString("SHOPPING CART BILL\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if b.CustomerName != "" && b.CustomerMobile != "" {
		sb.WriteString("Customer: " + b.CustomerName + "\n")
		sb.WriteString("Mobile: " + b.CustomerMobile + "\n")
		if b.RewardTier != "" {
			sb.WriteString("Reward Tier: " + b.RewardTier + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(pad("Item", 30) + " " + pad("Qty", 8) + " " + pad("Price", 12) + " " + pad("Total", 12) + "\n")
	sb.WriteString(strings.Repeat("-", 62) + "\n")

	for _, it := range b.Items {
		sb.WriteString(pad(it.Name, 30) + " " +
			pad(strconv.Itoa(it.Quantity), 8) + " " +
			pad(FormatPrice(symbol, it.UnitPrice), 12) + " " +
			pad(FormatPrice(symbol, it.Total), 12) + "\n")
	}

	sb.WriteString(strings.Repeat("-", 62) + "\n")
	sb.WriteString("Subtotal: " + FormatPrice(symbol, b.SubTotal) + "\n")

	if b.Discount > 0 {
		sb.WriteString("Discount: " + FormatPrice(symbol, b.Discount) + "\n")
	}

	sb.WriteString("Final Amount: " + FormatPrice(symbol, b.Total) + "\n")

	return sb.String()
}

// pad left-aligns s in a field of width columns. Padding counts runes,
// not bytes, so the multi-byte currency symbol keeps column alignment.
// Strings longer than the field are kept whole.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
