// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid (including unknown status strings)
//   - ObjectNotFoundError: For when an order, delivery, or product cannot be found
//   - VersionConflictError: For when an optimistic concurrency check rejects a stale write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Business-rule violations (an action not permitted from the current status)
// are NOT expressed through this package: state machines report those as
// transition results. The errs types cover infrastructure and data-integrity
// failures that must propagate to the caller.
package errs
