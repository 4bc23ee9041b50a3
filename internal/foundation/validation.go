// Package foundation provides small generic building blocks shared across packages.
package foundation

import (
	"cmp"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/designpreview/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{Errors: errs}
}

// Combine merges two validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}
	return Invalid(append(append([]FieldError{}, vr.Errors...), other.Errors...)...)
}

// ToError converts an invalid result into a classified error of the given category.
func (vr ValidationResult) ToError(category errors.ErrorCategory) error {
	if vr.Valid {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		messages = append(messages, fe.Error())
	}
	b := errors.NewError(category, strings.Join(messages, "; "))
	if len(vr.Errors) > 0 {
		b = b.WithContext("field", vr.Errors[0].Field)
	}
	return b.Build()
}

// ValidatorChain runs validators in order and collects every failure.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()
	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}
	return result
}

// Field adapts a validator for a field value into a validator for its parent.
func Field[P, F any](get func(P) F, v Validator[F]) Validator[P] {
	return func(p P) ValidationResult { return v(get(p)) }
}

// NotEmpty rejects the empty string.
func NotEmpty(field string) Validator[string] {
	return func(s string) ValidationResult {
		if s == "" {
			return Invalid(FieldError{Field: field, Code: "required", Message: "must not be empty"})
		}
		return Valid()
	}
}

// InRange rejects values outside [lo, hi].
func InRange[T cmp.Ordered](field string, lo, hi T) Validator[T] {
	return func(v T) ValidationResult {
		if v < lo || v > hi {
			return Invalid(FieldError{
				Field:   field,
				Code:    "range",
				Message: fmt.Sprintf("%v out of range [%v, %v]", v, lo, hi),
			})
		}
		return Valid()
	}
}

// NonNegative rejects values below zero.
func NonNegative[T cmp.Ordered](field string) Validator[T] {
	return func(v T) ValidationResult {
		var zero T
		if v < zero {
			return Invalid(FieldError{Field: field, Code: "negative", Message: "must not be negative"})
		}
		return Valid()
	}
}
