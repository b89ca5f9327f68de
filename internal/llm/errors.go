package llm

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured       = errors.New("AI service is not configured: GITHUB_AI_TOKEN not set")
	ErrUnsupportedLanguage = errors.New("unsupported target language")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidArgument     = errors.New("invalid argument")
)

// UpstreamError is a failed call to the model provider. StatusCode is zero
// for transport failures.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Message)
	}
	return "upstream error: " + e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }
