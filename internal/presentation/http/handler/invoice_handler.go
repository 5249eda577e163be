package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopcart/pos-api/internal/application/service"
	"github.com/shopcart/pos-api/internal/presentation/http/dto/response"
	"github.com/shopcart/pos-api/pkg/pagination"
)

// InvoiceHandler handles invoice ledger HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func invoiceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return 0, false
	}
	return uint(id), true
}

// List handles searching a customer's invoices by mobile, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	mobile := c.Query("mobile")
	if mobile == "" {
		response.BadRequest(c, "mobile query parameter is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.invoiceService.Search(c.Request.Context(), mobile, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles fetching a single invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// Email sends the stored bill to the customer email on the invoice
func (h *InvoiceHandler) Email(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.EmailBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice emailed", nil)
}

// Print sends the invoice to the receipt printer
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed", nil)
}

// SalesReport aggregates invoices over a date range (DD/MM/YYYY)
func (h *InvoiceHandler) SalesReport(c *gin.Context) {
	if !IsAdmin(c) {
		response.ErrorWithCode(c, 403, "Admin access required")
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		response.BadRequest(c, "from and to query parameters are required")
		return
	}

	report, err := h.invoiceService.SalesReport(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report generated", report)
}
