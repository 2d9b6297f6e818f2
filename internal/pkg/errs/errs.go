package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrForbidden         = errors.New("forbidden")
	ErrIllegalTransition = errors.New("illegal transition")
	ErrClaimConflict     = errors.New("claim conflict")
	ErrOrderCreation     = errors.New("order creation failed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Kind is the stable, caller-facing classification of an error.
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindIllegalTransition   Kind = "illegal_transition"
	KindClaimConflict       Kind = "claim_conflict"
	KindOrderCreationFailed Kind = "order_creation_failed"
	KindStoreUnavailable    Kind = "store_unavailable"
	KindInternal            Kind = "internal"
)

// KindOf classifies err by the sentinel it wraps. The check order matters:
// an order creation failure caused by a validation problem is still reported
// as an order creation failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOrderCreation):
		return KindOrderCreationFailed
	case errors.Is(err, ErrClaimConflict):
		return KindClaimConflict
	case errors.Is(err, ErrIllegalTransition):
		return KindIllegalTransition
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindInternal
	}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ForbiddenError reports that an actor exists but lacks the relationship
// required for the requested operation on a resource.
type ForbiddenError struct {
	ActorID  string
	Resource string
	ID       string
	Reason   string
}

func NewForbiddenError(actorID, resource, id, reason string) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Resource: resource, ID: id, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %s on %s %s: %s", ErrForbidden, e.ActorID, e.Resource, e.ID, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// IllegalTransitionError carries the persisted status at the time of the
// check so callers can resynchronize their view.
type IllegalTransitionError struct {
	OrderID   string
	Role      string
	Current   string
	Attempted string
}

func NewIllegalTransitionError(orderID, role, current, attempted string) *IllegalTransitionError {
	return &IllegalTransitionError{OrderID: orderID, Role: role, Current: current, Attempted: attempted}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s cannot move from %s to %s as %s",
		ErrIllegalTransition, e.OrderID, e.Current, e.Attempted, e.Role)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

type ClaimConflictError struct {
	OrderID string
	Current string
}

func NewClaimConflictError(orderID, current string) *ClaimConflictError {
	return &ClaimConflictError{OrderID: orderID, Current: current}
}

func (e *ClaimConflictError) Error() string {
	return fmt.Sprintf("%s: order %s is no longer available (status %s)", ErrClaimConflict, e.OrderID, e.Current)
}

func (e *ClaimConflictError) Unwrap() error {
	return ErrClaimConflict
}

type OrderCreationFailedError struct {
	Cause error
}

func NewOrderCreationFailedError(cause error) *OrderCreationFailedError {
	return &OrderCreationFailedError{Cause: cause}
}

func (e *OrderCreationFailedError) Error() string {
	return withCause(ErrOrderCreation.Error(), e.Cause)
}

func (e *OrderCreationFailedError) Unwrap() error {
	return ErrOrderCreation
}

type StoreUnavailableError struct {
	Operation string
	Cause     error
}

func NewStoreUnavailableError(operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{Operation: operation, Cause: cause}
}

func (e *StoreUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStoreUnavailable, e.Operation), e.Cause)
}

func (e *StoreUnavailableError) Unwrap() error {
	return ErrStoreUnavailable
}

// WrapStore passes typed domain errors through untouched and classifies
// anything else coming back from the store as StoreUnavailable.
func WrapStore(operation string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindInternal {
		return err
	}
	return NewStoreUnavailableError(operation, err)
}
