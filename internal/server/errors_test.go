package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orastria/book-generator/internal/generator"
	"github.com/orastria/book-generator/internal/intake"
	"github.com/orastria/book-generator/internal/numerology"
	"github.com/orastria/book-generator/internal/storage"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error",
			err:  &intake.ValidationError{Field: "sun_sign", Message: "required field is missing"},
			want: http.StatusBadRequest,
		},
		{
			name: "calculation error",
			err:  &numerology.CalculationError{Input: "not-a-date", Cause: assert.AnError},
			want: http.StatusBadRequest,
		},
		{
			name: "generation error",
			err:  &generator.GenerationError{Section: "tarot", Cause: assert.AnError},
			want: http.StatusBadGateway,
		},
		{
			name: "publish error",
			err:  &storage.PublishError{Key: "orastria_x_1.pdf", Cause: assert.AnError},
			want: http.StatusBadGateway,
		},
		{
			name: "wrapped generation error",
			err:  fmt.Errorf("run failed: %w", &generator.GenerationError{Section: "love", Cause: assert.AnError}),
			want: http.StatusBadGateway,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
