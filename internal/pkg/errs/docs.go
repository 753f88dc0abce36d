// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The taxonomy mirrors the outcomes the ingress API has to distinguish:
//   - ObjectNotFoundError: a referenced order or actor is absent
//   - ForbiddenError: the caller is not the owning actor for the action
//   - ConflictError: a lost claim race or an action from an incompatible status
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input, including confirmation-code mismatches
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel, so call sites classify
//     errors with errors.Is rather than type switches
//
// ConflictError additionally carries a ConflictCode because a courier that
// lost the claim race and a courier that already holds an active order both
// receive a conflict, yet must be told apart by their clients.
package errs
