package backend

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrInvalidResponse is returned when a 2xx response body cannot be used.
var ErrInvalidResponse = errors.New("invalid response")

// StatusError reports a non-2xx answer from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// IsStatus reports whether err carries a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
