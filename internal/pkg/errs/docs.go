// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Two families of errors live here:
//
//   - Generic validation errors shared by value objects and commands:
//     ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError.
//
//   - The mutation outcome taxonomy of the order state machine:
//     IllegalTransitionError (edge not defined from current status),
//     StaleStateError (compare-and-set lost to a concurrent writer),
//     TerminalStateError (mutation on a delivered/cancelled/rejected order),
//     DuplicateActionError (double submission of an already-applied action).
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrStaleState)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Handlers and HTTP adapters classify failures exclusively through errors.Is
// against the sentinels, never by string matching.
package errs
