package parser

import (
	"errors"
	"fmt"

	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
)

// Sentinel causes for normalization failures, usable with errors.Is.
var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// UnrecognizedMessageError means no classification rule matched the text.
type UnrecognizedMessageError struct {
	Text string
}

func (e *UnrecognizedMessageError) Error() string {
	return fmt.Sprintf("message format not recognized: %q", e.Text)
}

// MissingFieldError means the message matched a known template but a
// mandatory field's anchor pattern was absent, e.g. a truncated message.
type MissingFieldError struct {
	Kind  models.Kind
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s message is missing mandatory field %q", e.Kind, e.Field)
}

// NormalizationError means a located raw field could not be converted to
// its typed form. It wraps ErrInvalidAmount or ErrInvalidTimestamp.
type NormalizationError struct {
	Field string
	Value string
	err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %s %q: %v", e.Field, e.Value, e.err)
}

func (e *NormalizationError) Unwrap() error {
	return e.err
}
