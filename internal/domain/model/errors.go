package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for points errors. The typed errors below match them via errors.Is.
var (
	ErrUnknownDiscipline = errors.New("unknown discipline")
	ErrInvalidTime       = errors.New("invalid time")
	ErrInvalidRank       = errors.New("invalid rank")
	ErrUnknownEventLevel = errors.New("unknown event level")
	ErrUnknownTier       = errors.New("unknown category tier")
	ErrMissingField      = errors.New("missing field")
	ErrValidation        = errors.New("validation failed")
)

// UnknownDisciplineError reports a discipline code absent from the registry.
type UnknownDisciplineError struct {
	Code DisciplineCode
}

func (e *UnknownDisciplineError) Error() string {
	return fmt.Sprintf("unknown discipline %q", string(e.Code))
}

func (e *UnknownDisciplineError) Is(target error) bool { return target == ErrUnknownDiscipline }

// InvalidTimeError reports a non-positive or inconsistent time field.
type InvalidTimeError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidTimeError) Is(target error) bool { return target == ErrInvalidTime }

// InvalidRankError reports a rank below 1.
type InvalidRankError struct {
	Rank int
}

func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("invalid rank %d: must be >= 1", e.Rank)
}

func (e *InvalidRankError) Is(target error) bool { return target == ErrInvalidRank }

// UnknownEventLevelError reports an event level without a coefficient.
type UnknownEventLevelError struct {
	Level EventLevel
}

func (e *UnknownEventLevelError) Error() string {
	return fmt.Sprintf("unknown event level %q", string(e.Level))
}

func (e *UnknownEventLevelError) Is(target error) bool { return target == ErrUnknownEventLevel }

// UnknownTierError reports a category tier without a ceiling.
type UnknownTierError struct {
	Tier CategoryTier
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unknown category tier %q", string(e.Tier))
}

func (e *UnknownTierError) Is(target error) bool { return target == ErrUnknownTier }

// MissingFieldError reports a required field that was not supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field " + e.Field
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// ItemError ties a failure to its position in a batch.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }

func (e *ItemError) Unwrap() error { return e.Err }

// BatchError aggregates the failed items of a batch computation.
type BatchError struct {
	Items []*ItemError
}

func (e *BatchError) Error() string {
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		parts[i] = it.Error()
	}
	return fmt.Sprintf("%d of batch failed: %s", len(e.Items), strings.Join(parts, "; "))
}

// Unwrap exposes the item errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Items))
	for i, it := range e.Items {
		errs[i] = it
	}
	return errs
}
