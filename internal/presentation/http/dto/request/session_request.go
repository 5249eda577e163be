package request

// AddItemRequest represents a cart line item entry.
// Quantity and price bounds are enforced again in the service so the
// rules hold for every caller, not just HTTP.
type AddItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

// AttachCustomerRequest represents a customer identity capture for the
// current transaction.
type AttachCustomerRequest struct {
	Name   string `json:"name" binding:"required,min=3"`
	Mobile string `json:"mobile" binding:"required,mobile"`
	DOB    string `json:"dob" binding:"omitempty,ddmmyyyy"`
	Email  string `json:"email" binding:"omitempty,email"`
}
