package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaMismatch is returned when the reference feature list names a
	// column the assembler cannot produce.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrInvalidApplicant is returned when raw input is outside its domain.
	ErrInvalidApplicant = errors.New("invalid applicant")

	// ErrWidthMismatch is returned by scalers and classifiers fed a vector of
	// the wrong width.
	ErrWidthMismatch = errors.New("feature vector width mismatch")

	// ErrPredictionNotFound is returned by repositories for unknown ids.
	ErrPredictionNotFound = errors.New("prediction not found")
)

// SchemaMismatchError lists the reference columns that could not be produced.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: reference feature list requires unknown columns [%s]",
		ErrSchemaMismatch, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrSchemaMismatch) hold.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// FieldError describes one invalid applicant field.
type FieldError struct {
	Field  string
	Reason string
}

// InvalidApplicantError collects every invalid field of a raw input record.
type InvalidApplicantError struct {
	Fields []FieldError
}

func (e *InvalidApplicantError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidApplicant, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidApplicant) hold.
func (e *InvalidApplicantError) Is(target error) bool {
	return target == ErrInvalidApplicant
}

// Reason returns the reason recorded for field, or "".
func (e *InvalidApplicantError) Reason(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Reason
		}
	}
	return ""
}
