package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap targets for every typed error in this
// package. Callers classify failures with errors.Is against these values.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrStaleState          = errors.New("stale state")
	ErrTerminalState       = errors.New("terminal state")
	ErrDuplicateAction     = errors.New("duplicate action")
	ErrFeeMisconfigured    = errors.New("delivery fee misconfigured")
	ErrDeliveryUnavailable = errors.New("delivery unavailable")
	ErrBelowMinimumOrder   = errors.New("below minimum order amount")
)

// sanitize strips newlines from values embedded into error messages so a
// single log line cannot be split by attacker-controlled input.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " "), "\r", " ")
}

// ObjectNotFoundError indicates that an object could not be located by its
// identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping the
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping the
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value fell outside its
// permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping
// the underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping the
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// IllegalTransitionError indicates that the requested status edge is not
// defined from the record's current status. The request is rejected whole;
// no partial state is applied.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given
// entity and edge.
func NewIllegalTransitionError(entity, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrIllegalTransition, e.Entity, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// StaleStateError indicates that a compare-and-set write lost the race: the
// stored version no longer matched the version the caller read. The caller
// should refetch current state and decide whether to retry.
type StaleStateError struct {
	Entity  string
	ID      any
	Version int
}

// NewStaleStateError creates a StaleStateError for the given entity, id and
// the version the caller attempted to write against.
func NewStaleStateError(entity string, id any, version int) *StaleStateError {
	return &StaleStateError{Entity: entity, ID: id, Version: version}
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s: %s %s changed concurrently (attempted version %d)",
		ErrStaleState, e.Entity, sanitize(e.ID), e.Version)
}

func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}

// TerminalStateError indicates that a mutation was attempted on a record that
// already reached a terminal status.
type TerminalStateError struct {
	Entity string
	Status string
}

// NewTerminalStateError creates a TerminalStateError for the given entity and
// its terminal status.
func NewTerminalStateError(entity, status string) *TerminalStateError {
	return &TerminalStateError{Entity: entity, Status: status}
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("%s: %s is already %s", ErrTerminalState, e.Entity, e.Status)
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

// DuplicateActionError indicates that an action was submitted for a record
// that already holds the action's target state. It is reported distinctly
// from IllegalTransitionError so clients can tell a double submission apart
// from a wrong-state request.
type DuplicateActionError struct {
	Action string
	Entity string
	ID     any
}

// NewDuplicateActionError creates a DuplicateActionError.
func NewDuplicateActionError(action, entity string, id any) *DuplicateActionError {
	return &DuplicateActionError{Action: action, Entity: entity, ID: id}
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("%s: %s already applied to %s %s", ErrDuplicateAction, e.Action, e.Entity, sanitize(e.ID))
}

func (e *DuplicateActionError) Unwrap() error {
	return ErrDuplicateAction
}
