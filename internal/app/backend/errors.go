// internal/app/backend/errors.go
package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned (or matched via errors.Is) when a referenced entity
// does not exist.
var ErrNotFound = errors.New("not found")

// Error is a failed backend call. Status is the HTTP status for REST calls
// and 0 for transport or storage failures.
type Error struct {
	Op      string // e.g. "POST /assignment-history"
	Status  int
	Message string // user-facing message reported by the backend, if any
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s: %d: %s", e.Op, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Retryable reports whether a read that failed this way is worth retrying:
// transport failures, 408, 429 and 5xx.
func (e *Error) Retryable() bool {
	switch {
	case e.Status == 0:
		return true
	case e.Status == http.StatusRequestTimeout, e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	}
	return false
}

// Message returns the best user-facing message for err: the backend's own
// message when there is one, otherwise err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	if errors.Is(err, ErrNotFound) {
		return "The requested record was not found."
	}
	return err.Error()
}
