// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers two groups of errors:
//
// Generic validation errors shared by all layers:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ValueIsOutOfRangeError: a value is outside its allowed bounds
//   - ObjectNotFoundError: an object cannot be found
//
// The fulfillment error taxonomy, surfaced to operators with stable codes:
//   - IllegalTransitionError: item status regression or skip
//   - WrongProductError: scanned barcode matches no pending item on the order
//   - StockShortageError: on-hand quantity below the requested quantity
//   - QuantityExceededError: confirmed quantity differs from the requested one
//   - OracleUnavailableError: stock lookup timed out or failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrWrongProduct)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Callers classify errors with errors.Is against the sentinels; the HTTP
// adapter relies on this to map every failure to a stable wire code.
package errs
