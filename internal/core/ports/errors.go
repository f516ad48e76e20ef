package ports

import (
	"errors"
	"fmt"
)

// ErrorKind classifies backend request failures.
type ErrorKind int

const (
	KindUnreachable ErrorKind = iota // connection refused, DNS, etc.
	KindTimeout                      // request exceeded its deadline
	KindHTTP                         // non-2xx response
	KindMalformed                    // body could not be decoded
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ErrBackendRequest is the sentinel all RequestErrors match via errors.Is.
var ErrBackendRequest = errors.New("backend request failed")

// RequestError carries the failure kind so callers can distinguish a
// timeout from a bad payload without string matching.
type RequestError struct {
	Op     string // "health", "trending", "analytics"
	Kind   ErrorKind
	Status int // HTTP status, when Kind == KindHTTP
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool {
	return target == ErrBackendRequest
}
