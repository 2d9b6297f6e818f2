package order

import (
	"fmt"

	"supplyhub/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Its string form is the value
// persisted and exposed on the wire.
//
//	pending ──> confirmed ──> ready_for_pickup ──> out_for_delivery ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
type Status string

const (
	Pending        Status = "pending"
	Confirmed      Status = "confirmed"
	ReadyForPickup Status = "ready_for_pickup"
	OutForDelivery Status = "out_for_delivery"
	Delivered      Status = "delivered"
	Cancelled      Status = "cancelled"
)

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, ReadyForPickup, OutForDelivery, Delivered, Cancelled}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	switch s {
	case Pending, Confirmed, ReadyForPickup, OutForDelivery, Delivered, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHavePartner checks that a bound delivery partner and the status
// agree: a partner is bound by the claim that moves the order out for
// delivery, and is never cleared.
func (s Status) ValidateCanHavePartner(hasPartner bool) error {
	needsPartner := s == OutForDelivery || s == Delivered
	if hasPartner && !needsPartner {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a delivery partner", s),
		)
	}
	if !hasPartner && needsPartner {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no delivery partner", s),
		)
	}
	return nil
}
