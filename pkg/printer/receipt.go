package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// Text alignment
const (
	alignLeft   = 0
	alignCenter = 1
)

// ReceiptItem represents a single line item on a printed receipt.
type ReceiptItem struct {
	Name     string
	Quantity int
	Price    string // already rendered with the currency symbol
	Total    string
}

// Receipt is a value object representing a printable invoice receipt.
// It is composed from invoice data at print time, not stored.
type Receipt struct {
	StoreName  string
	InvoiceNo  uint
	Date       string
	Customer   string
	Mobile     string
	RewardTier string
	Items      []ReceiptItem
	SubTotal   string
	Discount   string // empty when no discount applied
	Total      string
}

// document builds an ESC/POS byte stream for 80mm thermal paper.
type document struct {
	buf   bytes.Buffer
	width int
}

func newDocument(charWidth int) *document {
	d := &document{width: charWidth}
	d.buf.Write([]byte{escByte, '@'}) // initialize printer
	return d
}

func (d *document) align(a int) *document {
	d.buf.Write([]byte{escByte, 'a', byte(a)})
	return d
}

func (d *document) bold(on bool) *document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{escByte, 'E', b})
	return d
}

func (d *document) line(s string) *document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lfByte)
	return d
}

func (d *document) separator(char byte) *document {
	return d.line(strings.Repeat(string(char), d.width))
}

// keyValue prints a left-aligned key and right-aligned value on one line.
func (d *document) keyValue(key, value string) *document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	return d.line(key + strings.Repeat(" ", spaces) + value)
}

func (d *document) feed(n int) *document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lfByte)
	}
	return d
}

func (d *document) cut() *document {
	d.buf.Write([]byte{gsByte, 'V', 0x00})
	return d
}

// FormatReceipt renders a receipt as an ESC/POS byte stream for 80mm
// paper (48 characters wide).
func FormatReceipt(r *Receipt) []byte {
	d := newDocument(48)

	d.align(alignCenter).bold(true).line(r.StoreName).bold(false)
	d.align(alignLeft)
	d.separator('=')
	d.keyValue(fmt.Sprintf("Invoice #%d", r.InvoiceNo), r.Date)
	if r.Customer != "" && r.Mobile != "" {
		d.line("Customer: " + r.Customer)
		d.line("Mobile: " + r.Mobile)
		if r.RewardTier != "" {
			d.line("Reward Tier: " + r.RewardTier)
		}
	}
	d.separator('-')

	for _, it := range r.Items {
		prefix := fmt.Sprintf("%dx %s", it.Quantity, it.Name)
		d.keyValue(prefix, it.Total)
	}

	d.separator('-')
	d.keyValue("Subtotal", r.SubTotal)
	if r.Discount != "" {
		d.keyValue("Discount", r.Discount)
	}
	d.bold(true).keyValue("Final Amount", r.Total).bold(false)
	d.separator('=')
	d.align(alignCenter).line("Thank you for your purchase!")
	d.feed(4).cut()

	return d.buf.Bytes()
}
