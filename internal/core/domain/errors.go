package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound     = errors.New("consultation record not found")
	ErrFeedbackNotAllowed = errors.New("feedback is only accepted for completed consultations")
	ErrSaveInFlight       = errors.New("section save already in progress")
	ErrUnknownField       = errors.New("unknown profile field")
	ErrUnknownSection     = errors.New("unknown profile section")
	ErrUnsupportedExport  = errors.New("unsupported export format")
	ErrInvalidPhoto       = errors.New("invalid photo")
	ErrPostalCodeNotFound = errors.New("postal code not found")
)

// ValidationError is local and field scoped. It blocks a submission.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Cause   error             `json:"-"`
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("validation failed: %s (%s)", e.Message, strings.Join(parts, "; "))
}

// NetworkError wraps a failed call to an external collaborator.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status code: %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DataShapeError records an unexpected or missing backend field that was defaulted.
type DataShapeError struct {
	RecordID string `json:"recordId,omitempty"`
	Field    string `json:"field"`
	Value    string `json:"value,omitempty"`
	Reason   string `json:"reason"`
}

func (e DataShapeError) Error() string {
	return fmt.Sprintf("record %q field %s: %s", e.RecordID, e.Field, e.Reason)
}

func IsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

func IsNetwork(err error) (*NetworkError, bool) {
	var nErr *NetworkError
	if errors.As(err, &nErr) {
		return nErr, true
	}
	return nil, false
}
