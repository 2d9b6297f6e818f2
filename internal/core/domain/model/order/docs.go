// Package order implements the purchase order aggregate.
//
// An order is placed by a vendor with one supplier, carries at least one line
// item, and moves through
//
//	pending -> confirmed -> ready_for_pickup -> out_for_delivery -> delivered
//
// with cancellation possible while pending or confirmed. Which role may
// request which move is fixed by the transition table in transitions.go.
// A delivery partner is bound exactly once, by the claim that moves a
// ready order out for delivery.
package order
