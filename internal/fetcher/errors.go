package fetcher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoUsableContent means no strategy produced a usable page
	ErrNoUsableContent = errors.New("no strategy returned usable content")
	// ErrContentTooShort rejects empty shells and stub pages
	ErrContentTooShort = errors.New("content below minimum length")
	// ErrNoStrategies is returned by Fetch when the fetcher has nothing to try
	ErrNoStrategies = errors.New("no retrieval strategies configured")
)

// StatusError is a final response with a non-2xx status
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// StrategyError records why one strategy failed
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// AttemptsError is returned when every strategy failed
type AttemptsError struct {
	Target   string
	Attempts []*StrategyError
}

func (e *AttemptsError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s for %s", ErrNoUsableContent, e.Target)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("%s for %s: %s", ErrNoUsableContent, e.Target, strings.Join(parts, "; "))
}

func (e *AttemptsError) Is(target error) bool {
	return target == ErrNoUsableContent
}

// Errors returns the per-strategy failures as plain errors
func (e *AttemptsError) Errors() []error {
	out := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a)
	}
	return out
}

func (e *AttemptsError) Unwrap() []error {
	return e.Errors()
}
