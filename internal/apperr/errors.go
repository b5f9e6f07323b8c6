package apperr

import (
	"errors"
	"fmt"
)

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness or state conflict (HTTP 409).
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// Forbidden indicates that the acting user lacks the capability for the operation.
var Forbidden = errors.New("forbidden")

// RoutingError reports that geocoding or routing failed for a location.
// Callers keep the previous fee and coordinates and surface a notice.
type RoutingError struct {
	Location string
	Err      error
}

func (e *RoutingError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("routing failed: %v", e.Err)
	}
	return fmt.Sprintf("could not locate %q: %v", e.Location, e.Err)
}

func (e *RoutingError) Unwrap() error { return e.Err }

// TransitionRejected reports an illegal state change or a missing capability.
// A capability rejection also matches Forbidden.
type TransitionRejected struct {
	Op         string
	From       string
	Reason     string
	Capability bool
}

func (e *TransitionRejected) Error() string {
	if e.From == "" {
		return fmt.Sprintf("%s rejected: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s rejected in status %s: %s", e.Op, e.From, e.Reason)
}

// Is lets errors.Is(err, Forbidden) match capability rejections.
func (e *TransitionRejected) Is(target error) bool {
	return e.Capability && target == Forbidden
}

// ChannelError reports that the live channel dropped unexpectedly.
type ChannelError struct {
	DeliveryID int64
	Err        error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("live channel for delivery %d: %v", e.DeliveryID, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }

// PaymentInitiationError reports that the payment hand-off failed. The payer may retry.
type PaymentInitiationError struct {
	DeliveryID int64
	Err        error
}

func (e *PaymentInitiationError) Error() string {
	return fmt.Sprintf("payment initiation for delivery %d failed: %v", e.DeliveryID, e.Err)
}

func (e *PaymentInitiationError) Unwrap() error { return e.Err }

// Rejected builds a TransitionRejected.
func Rejected(op, from, reason string) error {
	return &TransitionRejected{Op: op, From: from, Reason: reason}
}

// Denied builds a TransitionRejected for a missing capability.
func Denied(op, reason string) error {
	return &TransitionRejected{Op: op, Reason: reason, Capability: true}
}

// IsRouting reports whether err is, or wraps, a RoutingError.
func IsRouting(err error) bool {
	var re *RoutingError
	return errors.As(err, &re)
}

// IsRejected reports whether err is, or wraps, a TransitionRejected.
func IsRejected(err error) bool {
	var tr *TransitionRejected
	return errors.As(err, &tr)
}

// IsPaymentInitiation reports whether err is, or wraps, a PaymentInitiationError.
func IsPaymentInitiation(err error) bool {
	var pe *PaymentInitiationError
	return errors.As(err, &pe)
}
