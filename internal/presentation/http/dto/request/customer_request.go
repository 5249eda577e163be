package request

// UpsertCustomerRequest represents a customer create-or-update keyed
// by mobile number.
type UpsertCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=3"`
	DOB   string `json:"dob" binding:"omitempty,ddmmyyyy"`
	Email string `json:"email" binding:"omitempty,email"`
}
