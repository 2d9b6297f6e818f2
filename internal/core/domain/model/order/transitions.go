package order

import "supplyhub/internal/core/domain/model/actor"

// transitions maps a role to the targets it may request and, per target,
// the statuses the order may be in at that moment.
var transitions = map[actor.Role]map[Status][]Status{
	actor.Supplier: {
		Confirmed:      {Pending},
		ReadyForPickup: {Confirmed},
		Cancelled:      {Pending, Confirmed},
	},
	actor.Vendor: {
		Cancelled: {Pending, Confirmed},
	},
	actor.DeliveryPartner: {
		OutForDelivery: {ReadyForPickup},
		Delivered:      {OutForDelivery},
	},
}

// CanReach reports whether role may ever move an order to target.
func CanReach(role actor.Role, target Status) bool {
	_, ok := transitions[role][target]
	return ok
}

// IsLegal reports whether role may move an order from current to target.
func IsLegal(role actor.Role, current, target Status) bool {
	for _, from := range transitions[role][target] {
		if from == current {
			return true
		}
	}
	return false
}

// LegalSources returns the statuses from which role may reach target.
func LegalSources(role actor.Role, target Status) []Status {
	src := transitions[role][target]
	out := make([]Status, len(src))
	copy(out, src)
	return out
}
