// Package errs provides the error taxonomy of the order lifecycle service.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g., ErrObjectNotFound)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The sentinels map onto the stable kinds exposed to callers through KindOf:
//   - validation_error: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - not_found: ObjectNotFoundError
//   - forbidden: ForbiddenError
//   - illegal_transition: IllegalTransitionError (carries current and attempted status)
//   - claim_conflict: ClaimConflictError
//   - order_creation_failed: OrderCreationFailedError
//   - store_unavailable: StoreUnavailableError
package errs
