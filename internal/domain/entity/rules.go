package entity

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	ProductNameMin        = 3
	ProductNameMax        = 150
	ProductDescriptionMax = 500
	PasswordMin           = 8
)

// Field invariants shared by construction, full update and partial update.
// Each returns nil or a validation *Error naming the field.

func ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "name is required")
	}
	if n := utf8.RuneCountInString(name); n < ProductNameMin || n > ProductNameMax {
		return NewValidationError("name", "name must be between 3 and 150 characters")
	}
	return nil
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > ProductDescriptionMax {
		return NewValidationError("description", "description must not exceed 500 characters")
	}
	return nil
}

func ValidatePrice(price float64) error {
	if math.IsNaN(price) || price < 0 {
		return NewValidationError("price", "price must not be negative")
	}
	return nil
}

func ValidateStock(stock int) error {
	if stock < 0 {
		return NewValidationError("stock", "stock must not be negative")
	}
	return nil
}

func ValidateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "name is required")
	}
	return nil
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return NewValidationError("email", "email is invalid")
	}
	return nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < PasswordMin {
		return NewValidationError("password", "password must be at least 8 characters")
	}
	return nil
}

// NormalizeEmail is applied on every assignment of a user's email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
