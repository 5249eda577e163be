package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopcart/pos-api/internal/application/service"
	"github.com/shopcart/pos-api/internal/presentation/http/dto/request"
	"github.com/shopcart/pos-api/internal/presentation/http/dto/response"
	"github.com/shopcart/pos-api/pkg/pagination"
)

// CustomerHandler handles loyalty customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers with optional name/mobile search
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.customerService.List(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Suggestions handles autocomplete prefix search over names or mobiles
func (h *CustomerHandler) Suggestions(c *gin.Context) {
	field := c.DefaultQuery("field", "name")
	prefix := c.Query("prefix")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	suggestions, err := h.customerService.Suggestions(c.Request.Context(), field, prefix, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Suggestions retrieved", suggestions)
}

// Get handles fetching a customer by mobile number
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.Get(c.Request.Context(), c.Param("mobile"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// Upsert handles creating or updating a customer keyed by mobile
func (h *CustomerHandler) Upsert(c *gin.Context) {
	var req request.UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Upsert(c.Request.Context(), &service.UpsertCustomerInput{
		Name:   req.Name,
		Mobile: c.Param("mobile"),
		DOB:    req.DOB,
		Email:  req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer saved", customer)
}
