package client

import (
	"errors"
	"fmt"
)

// ErrNotSupported is returned by backends lacking an optional endpoint.
var ErrNotSupported = errors.New("operation not supported by backend")

// Category classifies the result of one logical request.
type Category int

const (
	Success Category = iota
	NotFound
	Unauthorized
	Transient
	Malformed
	Canceled
)

func (c Category) String() string {
	switch c {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case Transient:
		return "transient"
	case Malformed:
		return "malformed"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// TransportError reports a request that produced no usable answer. Message
// is user-facing; Err carries the underlying cause when there is one.
type TransportError struct {
	Category   Category
	Message    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transient transport failure.
func IsRetryable(err error) bool {
	return CategoryOf(err) == Transient
}

// CategoryOf returns the category of a *TransportError in err's chain, or
// Success when there is none.
func CategoryOf(err error) Category {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Category
	}
	return Success
}
