// Package errs provides the error taxonomy shared by the ordering core.
//
// Every kind follows the same pattern:
//   - a sentinel error variable (e.g., ErrObjectNotFound)
//   - a struct type carrying the details
//   - constructors with and without cause
//   - Error() with an optional "(cause: ...)" suffix
//   - Unwrap() so errors.Is matches the sentinel and the cause
//
// Kinds:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or missing input
//     (see IsValidation)
//   - ObjectNotFoundError: branch, dish, ingredient or order absent
//   - AuthenticationRequiredError: no principal supplied
//   - AccessDeniedError: role or branch scope mismatch
//   - ConflictError: unique-key collision or a lost compare-and-swap race
//   - InvalidTransitionError: order status edge not permitted
//   - BusinessRuleViolationError: well-formed input that breaks a domain rule
package errs
