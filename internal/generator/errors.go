package generator

import "fmt"

// GenerationError reports that one section could not be produced after
// bounded retries. The whole request fails with it; nothing gets
// published.
type GenerationError struct {
	Section string
	Cause   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for section %q: %v", e.Section, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
