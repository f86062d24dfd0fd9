package intake

import "fmt"

// ValidationError reports a missing or malformed intake field. Field uses
// the wire name ("sun_sign", "birth_date") so callers can surface it
// directly to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "required field is missing"}
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
