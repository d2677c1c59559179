package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnfetchable is matched by every UnfetchableError through errors.Is
var ErrUnfetchable = errors.New("unfetchable")

// UnfetchableError is returned when a homepage could not be retrieved through any strategy.
// It is terminal for a crawl: no partial asset list accompanies it.
type UnfetchableError struct {
	Domain   string
	URL      string
	Attempts []error
}

// Error returns the error message for UnfetchableError.
func (e *UnfetchableError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("unfetchable: %s", e.URL)
	}

	reasons := make([]string, 0, len(e.Attempts))
	for _, err := range e.Attempts {
		reasons = append(reasons, err.Error())
	}
	return fmt.Sprintf("unfetchable: %s (%s)", e.URL, strings.Join(reasons, "; "))
}

// Is lets errors.Is(err, ErrUnfetchable) match
func (e *UnfetchableError) Is(target error) bool {
	return target == ErrUnfetchable
}

// Unwrap exposes the per-strategy failures
func (e *UnfetchableError) Unwrap() []error {
	return e.Attempts
}

// NewUnfetchableError creates a new UnfetchableError
func NewUnfetchableError(domain, url string, attempts []error) *UnfetchableError {
	return &UnfetchableError{
		Domain:   domain,
		URL:      url,
		Attempts: attempts,
	}
}

// IsUnfetchable reports whether err marks an unfetchable homepage
func IsUnfetchable(err error) bool {
	return errors.Is(err, ErrUnfetchable)
}
