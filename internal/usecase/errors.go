package usecase

import (
	"errors"
	"fmt"
	"math"
)

// HTTPError carries the status the handler should answer with.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// round2 normalizes money to cents. All stored amounts go through this.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
