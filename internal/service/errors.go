package service

import "fmt"

// FieldError reports a validation failure on a specific payload field.
// These are resolved locally and never reach the storage backend.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func requiredField(field string) error {
	return &FieldError{Field: field, Message: "this field is required"}
}
