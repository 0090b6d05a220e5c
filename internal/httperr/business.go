package httperr

import (
	"errors"
	"fmt"
)

// BusinessError is a rule violation identified by a snake_case code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError is malformed input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ErrValidation(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// InvalidTransitionError is a booking status change the state machine rejects.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

func ErrInvalidTransition(from, to string) error {
	return InvalidTransitionError{From: from, To: to}
}

// QuotaExceededError is raised at redemption time when the global or the
// per-customer quota of a discount is already exhausted.
type QuotaExceededError struct {
	Scope string // "global" or "customer"
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("discount %s quota exceeded", e.Scope)
}

func ErrQuotaExceeded(scope string) error {
	return QuotaExceededError{Scope: scope}
}

// ConflictError is a clash with existing state: an overlapping booking or
// time-off, a duplicate code, a discount still in use.
type ConflictError struct {
	Code string
}

func (e ConflictError) Error() string {
	return e.Code
}

func ErrConflict(code string) error {
	return ConflictError{Code: code}
}

// NotEligibleError carries the evaluator's reason when a redemption is
// re-validated and the discount no longer applies.
type NotEligibleError struct {
	Message string
}

func (e NotEligibleError) Error() string {
	return e.Message
}

func ErrNotEligible(message string) error {
	return NotEligibleError{Message: message}
}

type ForbiddenError struct {
	Code string
}

func (e ForbiddenError) Error() string {
	return e.Code
}

func ErrForbidden(code string) error {
	return ForbiddenError{Code: code}
}

func IsConflict(err error, code string) bool {
	var ce ConflictError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
