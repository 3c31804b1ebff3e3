package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrFetchFailure      = errors.New("failed to load data")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrValidation        = errors.New("validation failed")
	ErrUpdateFailure     = errors.New("update failed")
	ErrEmptyCollection   = errors.New("empty collection")
	ErrRecordNotFound    = errors.New("record not found")
	ErrReadOnly          = errors.New("view is read-only")
	ErrConfigExists      = errors.New("config file already exists")
	ErrUnknownSourceKind = errors.New("unknown data source kind")
	ErrSourceNotReady    = errors.New("data source not configured")
)

// FetchFailure reports that a DataSource.List call or the normalization of its
// result failed. The refresh cycle that produced it renders nothing.
type FetchFailure struct {
	Err  error
	Mode Mode
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrFetchFailure, e.Mode, e.Err)
}

// Unwrap supports errors.Is for both the sentinel and the cause.
func (e *FetchFailure) Unwrap() []error {
	return []error{ErrFetchFailure, e.Err}
}

// MalformedRecordError reports a raw record missing a required field.
// Fields are ordered to minimize memory padding.
type MalformedRecordError struct {
	Field  string
	Reason string
	Index  int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s at index %d: %s %s", ErrMalformedRecord, e.Index, e.Field, e.Reason)
}

// Unwrap returns ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// ValidationError reports edit input rejected before submission.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UpdateFailure reports a rejected DataSource.Update call.
// Message carries the server-provided detail verbatim.
// Err optionally classifies the failure, e.g. ErrRecordNotFound.
type UpdateFailure struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *UpdateFailure) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("server error: %d %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// Unwrap returns ErrUpdateFailure and the classifying error, if any.
func (e *UpdateFailure) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpdateFailure}
	}
	return []error{ErrUpdateFailure, e.Err}
}
