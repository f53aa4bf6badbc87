package order

import (
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced    = "order_placed"
	EventOrderAccepted  = "order_accepted"
	EventOrderCancelled = "order_cancelled"
	EventOrderReady     = "order_ready"
	EventCourierRequest = "courier_request"
	EventOrderAssigned  = "order_assigned"
	EventOrderPickedUp  = "order_picked_up"
	EventOrderOnWay     = "order_on_way"
	EventOrderDelivered = "order_delivered"
)

// StatusChanged is broadcast on the order's topic after every transition.
type StatusChanged struct {
	Name       string
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	VendorID   kernel.UUID
	CourierID  *kernel.UUID
	Status     Status
}

func (e StatusChanged) EventName() string  { return e.Name }
func (e StatusChanged) RoutingKey() string { return e.OrderID.String() }

// CourierRequested is directed to the matched courier.
type CourierRequested struct {
	OrderID       kernel.UUID
	CourierID     kernel.UUID
	VendorID      kernel.UUID
	Pickup        kernel.Location
	DeliveryFee   decimal.Decimal
	DueOnDelivery decimal.Decimal
}

func (e CourierRequested) EventName() string  { return EventCourierRequest }
func (e CourierRequested) RoutingKey() string { return e.CourierID.String() }
