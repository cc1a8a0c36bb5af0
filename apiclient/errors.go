package apiclient

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// TimeoutError is returned when a request did not complete within its timeout. For a GET it
// means every allowed attempt timed out.
type TimeoutError struct {
	Method   string
	URL      string
	Attempts int
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s timed out after %d attempt(s): %s", e.Method, e.URL, e.Attempts, e.Err)
}

// Timeout makes TimeoutError recognizable as a timeout by anything that checks for net.Error.
func (e *TimeoutError) Timeout() bool { return true }

func (e *TimeoutError) Unwrap() error { return e.Err }

// IsTimeout reports whether err, or any error it wraps, is a request timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
