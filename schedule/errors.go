/*
errors.go - Centralized error types for the engine

PURPOSE:
  All engine error types in one place. Callers classify failures with the
  Is* helpers rather than matching concrete types.

ERROR TAXONOMY:
  1. Validation errors    - bad input, caught before any store access
  2. Conflict errors      - a scheduling overlap; recoverable by the user
  3. Authorization errors - actor lacks permission for the transition
  4. Not-found errors     - the referenced record does not exist
  5. Store errors         - persistence failures, propagated as-is

  Conflicts and authorization failures are surfaced distinctly so callers
  can render "pick another time" vs "not allowed".
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all input-validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is the root of all scheduling-overlap failures.
	ErrConflict = errors.New("scheduling conflict")

	// ErrNotAllowed is returned when the actor may not perform the action.
	ErrNotAllowed = errors.New("not allowed")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyApproved is returned by a redundant approval. Retries of an
	// approve call hit this instead of re-notifying.
	ErrAlreadyApproved = errors.New("already approved")

	// ErrTerminalStatus is returned when mutating a cancelled leave.
	ErrTerminalStatus = errors.New("record is in a terminal status")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError describes the first collision found: whose calendar, on
// which day, against which window, and what the counterpart record is.
// Enough to render a message; the scan is fail-fast, not exhaustive.
type ConflictError struct {
	EmployeeID string
	Date       Date
	Start      ClockTime // colliding window of the existing record
	End        ClockTime
	FullDay    bool   // existing record occupies the whole day
	With       string // counterpart description, e.g. client or leave type
	RecordID   string
}

func (e *ConflictError) Error() string {
	if e.FullDay {
		return fmt.Sprintf("employee %s is occupied all day on %s (%s)",
			e.EmployeeID, e.Date, e.With)
	}
	return fmt.Sprintf("employee %s is occupied %s-%s on %s (%s)",
		e.EmployeeID, e.Start, e.End, e.Date, e.With)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// AuthorizationError carries the denied action for the caller's message.
type AuthorizationError struct {
	Action string
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Reason)
}

func (e *AuthorizationError) Unwrap() error { return ErrNotAllowed }

func notAllowed(action, reason string) error {
	return &AuthorizationError{Action: action, Reason: reason}
}

// NotFoundError identifies the missing record.
type NotFoundError struct {
	Kind string // "assignment", "leave", "employee", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
func IsAuthorization(err error) bool { return errors.Is(err, ErrNotAllowed) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }

// IsClientError reports whether the failure is the caller's to fix, as
// opposed to a store fault.
func IsClientError(err error) bool {
	return IsValidation(err) || IsConflict(err) || IsAuthorization(err) ||
		IsNotFound(err) || errors.Is(err, ErrAlreadyApproved) ||
		errors.Is(err, ErrTerminalStatus)
}
