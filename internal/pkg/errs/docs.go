// Package errs provides standardized error types for the quoteflow application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the order lifecycle error taxonomy:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures
//   - ObjectNotFoundError: unknown identifiers
//   - StateConflictError: an action that is illegal for the current order status
//   - VersionConflictError: an optimistic concurrency check that lost a race
//   - CollaboratorFailureError: an external collaborator that is unavailable or misbehaving
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works through wrapping
package errs
