package contactform

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/folio/pkg/contact"
)

var (
	ErrInvalid      = errors.New("contactform: submission is invalid")
	ErrPending      = errors.New("contactform: submission already in progress")
	ErrUnknownField = errors.New("contactform: unknown field")
)

// ValidationError carries the field errors that blocked a submission.
// It matches ErrInvalid with errors.Is.
type ValidationError struct {
	Fields contact.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d field(s)", ErrInvalid, len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// StatusError is returned by HTTPTransport for any response other than 200.
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("contactform: unexpected status %d: %s", e.StatusCode, e.Body)
}
