// Package actor models the three parties that act on orders and the
// identity they present with every request.
package actor

import (
	"errors"
	"fmt"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

type Role string

const (
	Vendor          Role = "vendor"
	Supplier        Role = "supplier"
	DeliveryPartner Role = "delivery_partner"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Vendor, Supplier, DeliveryPartner:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is an authenticated caller: a profile id and the role it acts in.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
