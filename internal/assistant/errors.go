package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrGenerationUnavailable is returned when the generation backend cannot
	// produce an answer. It is the only failure surfaced to callers; retrieval
	// and scoring problems degrade locally instead.
	ErrGenerationUnavailable = errors.New("generation unavailable")
)

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
