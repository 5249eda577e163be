package service

import (
	"context"
	"fmt"

	"github.com/shopcart/pos-api/internal/domain/entity"
	"github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/pkg/apperror"
	"github.com/shopcart/pos-api/pkg/billfmt"
	"github.com/shopcart/pos-api/pkg/email"
	"github.com/shopcart/pos-api/pkg/pagination"
	"github.com/shopcart/pos-api/pkg/printer"
	"github.com/shopcart/pos-api/pkg/validator"
)

// InvoiceService provides read access to the invoice ledger plus
// delivery of saved bills over email and the receipt printer.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	emailService *email.EmailService
	printer      printer.Printer
	storeName    string
	currency     string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	emailService *email.EmailService,
	p printer.Printer,
	storeName, currency string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		emailService: emailService,
		printer:      p,
		storeName:    storeName,
		currency:     currency,
	}
}

// Get returns a single invoice with its frozen line items.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// Search returns a customer's invoices newest first. A malformed
// mobile cannot match any invoice, so it short-circuits to an empty
// result rather than an error.
func (s *InvoiceService) Search(ctx context.Context, mobile string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	params.Validate()

	if validator.Mobile(mobile) != nil {
		return pagination.NewPaginatedResult([]entity.Invoice{}, pagination.NewPagination(params.Page, params.PerPage, 0)), nil
	}

	invoices, total, err := s.invoiceRepo.ListByMobile(ctx, mobile, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// CanOfferEmail reports whether a bill copy can be emailed for this
// invoice: the sale captured an address and SMTP is configured.
func (s *InvoiceService) CanOfferEmail(invoice *entity.Invoice) bool {
	return invoice.CustomerEmail != "" && s.emailService.IsConfigured()
}

// EmailBill sends the stored bill text for an invoice to the customer
// email captured at checkout.
func (s *InvoiceService) EmailBill(ctx context.Context, id uint) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.CustomerEmail == "" {
		return apperror.NewBadRequestError("Invoice has no customer email")
	}
	if !s.emailService.IsConfigured() {
		return apperror.NewInternalError("Email service is not configured", nil)
	}

	subject := fmt.Sprintf("Your Invoice #%d - %s", invoice.ID, s.storeName)
	if err := s.emailService.SendBill(invoice.CustomerEmail, invoice.CustomerName, subject, invoice.BillContent, invoice.ID); err != nil {
		return apperror.NewInternalError("Failed to send invoice email", err)
	}
	return nil
}

// PrintReceipt renders an invoice as an ESC/POS receipt and sends it
// to the configured printer.
func (s *InvoiceService) PrintReceipt(ctx context.Context, id uint) error {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.printer == nil {
		return apperror.NewInternalError("No receipt printer configured", nil)
	}

	receipt := &printer.Receipt{
		StoreName: s.storeName,
		InvoiceNo: invoice.ID,
		Date:      invoice.CreatedAt.Format("02/01/2006 15:04"),
		Customer:  invoice.CustomerName,
		Mobile:    invoice.CustomerMobile,
		SubTotal:  billfmt.FormatPrice(s.currency, invoice.SubTotal),
		Total:     billfmt.FormatPrice(s.currency, invoice.Total),
	}
	if invoice.Discount > 0 {
		receipt.Discount = billfmt.FormatPrice(s.currency, invoice.Discount)
	}
	if invoice.Customer != nil {
		receipt.RewardTier = invoice.Customer.Tier().String()
	}
	for _, item := range invoice.Items {
		receipt.Items = append(receipt.Items, printer.ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Total:    billfmt.FormatPrice(s.currency, item.Total),
		})
	}

	if err := s.printer.Print(printer.FormatReceipt(receipt)); err != nil {
		return apperror.NewInternalError("Failed to print receipt", err)
	}
	return nil
}

// SalesReport aggregates the ledger over a closed date range.
func (s *InvoiceService) SalesReport(ctx context.Context, from, to string) (*repository.SalesReport, error) {
	fromT, err := validator.ParseReportDate(from)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "from", Message: "Invalid date, expected DD/MM/YYYY"}})
	}
	toT, err := validator.ParseReportDate(to)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "to", Message: "Invalid date, expected DD/MM/YYYY"}})
	}
	// Make the range inclusive of the end day.
	toT = toT.AddDate(0, 0, 1)

	report, err := s.invoiceRepo.SalesReport(ctx, fromT, toT)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to build sales report", err)
	}
	return report, nil
}
