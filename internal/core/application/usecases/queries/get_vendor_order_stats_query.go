package queries

import (
	"errors"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/pkg/guard"
)

var ErrGetVendorOrderStatsQueryIsNotConstructed = errors.New(
	"GetVendorOrderStatsQuery must be created via NewGetVendorOrderStatsQuery constructor",
)

type GetVendorOrderStatsQuery struct {
	vendorID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetVendorOrderStatsQuery(vendorID kernel.UUID) (GetVendorOrderStatsQuery, error) {
	if err := vendorID.Validate(); err != nil {
		return GetVendorOrderStatsQuery{}, err
	}
	return GetVendorOrderStatsQuery{vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorOrderStatsQueryIsNotConstructed)
}

func (q GetVendorOrderStatsQuery) VendorID() kernel.UUID {
	return q.vendorID
}
