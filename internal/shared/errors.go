package shared

import "errors"

var (
	// ErrInvalidInput indicates malformed or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingConfiguration indicates no company tax profile on file.
	ErrMissingConfiguration = errors.New("missing configuration")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates no caller identity was supplied.
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError carries a caller-facing localized message alongside the
// taxonomy sentinel it belongs to.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *DomainError) Unwrap() error { return e.Kind }

// InvalidInput builds an ErrInvalidInput with a localized message.
func InvalidInput(message string) error {
	return &DomainError{Kind: ErrInvalidInput, Message: message}
}

// MissingConfiguration builds an ErrMissingConfiguration with a localized message.
func MissingConfiguration(message string) error {
	return &DomainError{Kind: ErrMissingConfiguration, Message: message}
}

// NotFound builds an ErrNotFound with a localized message.
func NotFound(message string) error {
	return &DomainError{Kind: ErrNotFound, Message: message}
}

// UserMessage extracts the localized message when the error is caller-correctable.
// Internal errors yield an empty string so handlers fall back to a generic body.
func UserMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Error()
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrMissingConfiguration),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrUnauthorized):
		return err.Error()
	}
	return ""
}
