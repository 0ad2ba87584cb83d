package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by services, repositories and the HTTP layer.
var (
	// ErrValidationFailed is returned when one or more field checks fail. Use errors.As
	// with *ValidationError to get the per-field detail.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidDate, ErrInvalidTime and ErrEmptyDerivedValue are all ErrValidationFailed.
	ErrInvalidDate       = fmt.Errorf("%w: invalid date", ErrValidationFailed)
	ErrInvalidTime       = fmt.Errorf("%w: invalid time", ErrValidationFailed)
	ErrEmptyDerivedValue = fmt.Errorf("%w: derived value is empty", ErrValidationFailed)

	ErrDuplicateSlug     = errors.New("an event with this slug already exists")
	ErrDanglingReference = errors.New("referenced event does not exist")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// FieldError describes why a single input field was rejected.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// ValidationError collects every field failure of one validation pass.
type ValidationError struct {
	Fields []FieldError
}

// Add records a failure for field. err may be nil.
func (v *ValidationError) Add(field, message string, err error) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message, Err: err})
}

// HasErrors reports whether any field failed.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Fields) > 0
}

// OrNil returns v when it holds failures, nil otherwise.
func (v *ValidationError) OrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

// Unwrap exposes ErrValidationFailed and the underlying cause of each field, so
// errors.Is(err, ErrInvalidDate) works on a ValidationError that contains a bad date.
func (v *ValidationError) Unwrap() []error {
	errs := []error{ErrValidationFailed}
	for _, f := range v.Fields {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}
