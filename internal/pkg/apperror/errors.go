package apperror

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories the API surfaces. Ingestion and
// matching failures are final (caller must fix the input); generation failures
// are retryable with the identical request; storage failures stay generic.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedFormat
	KindEmptyContent
	KindParseError
	KindGenerationTimeout
	KindGenerationError
	KindServiceUnavailable
	KindRateLimited
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "UNSUPPORTED_FORMAT"
	case KindEmptyContent:
		return "EMPTY_CONTENT"
	case KindParseError:
		return "PARSE_ERROR"
	case KindGenerationTimeout:
		return "GENERATION_TIMEOUT"
	case KindGenerationError:
		return "GENERATION_ERROR"
	case KindServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func UnsupportedFormat(format string) *Error {
	return New(KindUnsupportedFormat, fmt.Sprintf("unsupported source kind %q", format))
}

func EmptyContent(message string) *Error {
	return New(KindEmptyContent, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// KindOf extracts the category from any error in the chain. Unwrapped errors
// report KindUnknown and are treated as internal failures by the HTTP layer.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Retryable reports whether the caller may retry the identical request. The
// system itself never retries generation to avoid duplicate billed calls.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindGenerationTimeout, KindGenerationError, KindServiceUnavailable, KindRateLimited:
		return true
	default:
		return false
	}
}
