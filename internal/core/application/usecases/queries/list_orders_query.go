package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetVendorOrdersQueryIsNotConstructed = errors.New(
		"GetVendorOrdersQuery must be created via NewGetVendorOrdersQuery constructor",
	)
	ErrGetCourierOrdersQueryIsNotConstructed = errors.New(
		"GetCourierOrdersQuery must be created via NewGetCourierOrdersQuery constructor",
	)
)

// GetVendorOrdersQuery lists a vendor's orders, newest first. Delivered and
// cancelled orders are left out unless includeTerminal is set.
type GetVendorOrdersQuery struct {
	vendorID        kernel.UUID
	includeTerminal bool

	guard guard.ConstructorGuard
}

func NewGetVendorOrdersQuery(vendorID kernel.UUID, includeTerminal bool) (GetVendorOrdersQuery, error) {
	if err := vendorID.Validate(); err != nil {
		return GetVendorOrdersQuery{}, err
	}
	return GetVendorOrdersQuery{
		vendorID:        vendorID,
		includeTerminal: includeTerminal,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q GetVendorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorOrdersQueryIsNotConstructed)
}

func (q GetVendorOrdersQuery) VendorID() kernel.UUID { return q.vendorID }
func (q GetVendorOrdersQuery) IncludeTerminal() bool { return q.includeTerminal }

// GetCourierOrdersQuery lists the orders assigned to a courier.
type GetCourierOrdersQuery struct {
	courierID       kernel.UUID
	includeTerminal bool

	guard guard.ConstructorGuard
}

func NewGetCourierOrdersQuery(courierID kernel.UUID, includeTerminal bool) (GetCourierOrdersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierOrdersQuery{}, err
	}
	return GetCourierOrdersQuery{
		courierID:       courierID,
		includeTerminal: includeTerminal,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierOrdersQueryIsNotConstructed)
}

func (q GetCourierOrdersQuery) CourierID() kernel.UUID { return q.courierID }
func (q GetCourierOrdersQuery) IncludeTerminal() bool  { return q.includeTerminal }
