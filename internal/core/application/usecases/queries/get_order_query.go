package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of viewerID, who must be its
// customer, vendor or assigned courier.
type GetOrderQuery struct {
	orderID  kernel.UUID
	viewerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, viewerID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewerID: viewerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID  { return q.orderID }
func (q GetOrderQuery) ViewerID() kernel.UUID { return q.viewerID }
