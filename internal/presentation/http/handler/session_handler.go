package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopcart/pos-api/internal/application/service"
	"github.com/shopcart/pos-api/internal/presentation/http/dto/request"
	"github.com/shopcart/pos-api/internal/presentation/http/dto/response"
)

// SessionHandler handles checkout session HTTP requests: the cart,
// the attached customer, bill calculation, and checkout.
type SessionHandler struct {
	billingService *service.BillingService
	invoiceService *service.InvoiceService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(billingService *service.BillingService, invoiceService *service.InvoiceService) *SessionHandler {
	return &SessionHandler{
		billingService: billingService,
		invoiceService: invoiceService,
	}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create starts a new checkout session
func (h *SessionHandler) Create(c *gin.Context) {
	state := h.billingService.OpenSession()
	response.Created(c, "Session created", state)
}

// Get returns the current session state
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	state, err := h.billingService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved", state)
}

// Close discards a session
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	h.billingService.CloseSession(id)
	response.NoContent(c)
}

// AddItem adds a line item to the session cart
func (h *SessionHandler) AddItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.billingService.AddItem(id, &service.AddItemInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added to cart", item)
}

// ClearCart empties the session cart
func (h *SessionHandler) ClearCart(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.billingService.ClearCart(id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", nil)
}

// AttachCustomer records the customer identity for the transaction
func (h *SessionHandler) AttachCustomer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.AttachCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.billingService.AttachCustomer(c.Request.Context(), id, &service.CustomerIdentity{
		Name:   req.Name,
		Mobile: req.Mobile,
		DOB:    req.DOB,
		Email:  req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer attached", customer)
}

// DetachCustomer reverts the session to a walk-in sale
func (h *SessionHandler) DetachCustomer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.billingService.DetachCustomer(id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer detached", nil)
}

// CalculateBill prices the cart and returns the bill preview
func (h *SessionHandler) CalculateBill(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	preview, err := h.billingService.CalculateBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill calculated", preview)
}

// Checkout persists the calculated bill as an invoice
func (h *SessionHandler) Checkout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var cashier *service.Cashier
	if employeeID := GetEmployeeID(c); employeeID != nil {
		cashier = &service.Cashier{ID: *employeeID, Username: GetUsername(c)}
	}

	invoice, err := h.billingService.Checkout(c.Request.Context(), id, cashier)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice saved", gin.H{
		"invoice":     invoice,
		"offer_email": h.invoiceService.CanOfferEmail(invoice),
	})
}
