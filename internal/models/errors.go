package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a post or category id has no matching row
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected field or a dangling category reference
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UnknownCategoryError builds the validation error for a category id that does not exist
func UnknownCategoryError(id int64) *ValidationError {
	return &ValidationError{Field: "categories", Message: "category does not exist", Value: id}
}

// AuthError is returned when the identity provider rejects a credential.
// Message is the provider's text and may be relayed to the caller.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "unauthorized: " + e.Message
}
