package server

import (
	"errors"
	"net/http"

	"github.com/orastria/book-generator/internal/generator"
	"github.com/orastria/book-generator/internal/intake"
	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/storage"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Bad intake is the caller's fault; a failed LLM call or upload is an
// upstream fault.
func HTTPStatus(err error) int {
	var (
		validationErr  *intake.ValidationError
		calculationErr *numerology.CalculationError
		generationErr  *generator.GenerationError
		publishErr     *storage.PublishError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &calculationErr):
		return http.StatusBadRequest
	case errors.As(err, &generationErr), errors.As(err, &publishErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
