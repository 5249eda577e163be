// Package validator holds the format checks applied to customer
// identity input. The checks are also registered as custom binding
// rules so request DTOs can use them in `binding` tags.
package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/shopcart/pos-api/pkg/apperror"
)

const dobLayout = "02/01/2006"

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Name checks a customer name: at least 3 characters after trimming.
func Name(name string) *apperror.FieldError {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 3 {
		return &apperror.FieldError{Field: "name", Message: "Name must be at least 3 characters long"}
	}
	return nil
}

// Mobile checks a mobile number: exactly 10 digits.
func Mobile(mobile string) *apperror.FieldError {
	if !mobilePattern.MatchString(mobile) {
		return &apperror.FieldError{Field: "mobile", Message: "Mobile number must be 10 digits"}
	}
	return nil
}

// DOB checks an optional date of birth in DD/MM/YYYY format.
func DOB(dob string) *apperror.FieldError {
	if dob == "" {
		return nil
	}
	if _, err := time.Parse(dobLayout, dob); err != nil {
		return &apperror.FieldError{Field: "dob", Message: "Date must be in DD/MM/YYYY format"}
	}
	return nil
}

// Email checks an optional email address.
func Email(email string) *apperror.FieldError {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return &apperror.FieldError{Field: "email", Message: "Invalid email format"}
	}
	return nil
}

// ParseReportDate parses a report range boundary in DD/MM/YYYY format.
func ParseReportDate(s string) (time.Time, error) {
	return time.Parse(dobLayout, s)
}

// Identity validates a full customer identity capture and returns all
// field errors at once, or nil when everything is valid.
func Identity(name, mobile, dob, email string) *apperror.AppError {
	var fields []apperror.FieldError
	if fe := Name(name); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := Mobile(mobile); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := DOB(dob); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := Email(email); fe != nil {
		fields = append(fields, *fe)
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// RegisterBindingRules adds the POS format checks to Gin's binding
// engine so DTOs can declare `binding:"mobile"` and `binding:"ddmmyyyy"`.
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(dobLayout, s)
		return err == nil
	})
}
