package kafka

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type statusPayload struct {
	OrderID    string  `json:"order_id"`
	CustomerID string  `json:"customer_id"`
	VendorID   string  `json:"vendor_id"`
	CourierID  *string `json:"courier_id,omitempty"`
	Status     string  `json:"status"`
}

type courierRequestPayload struct {
	OrderID       string          `json:"order_id"`
	CourierID     string          `json:"courier_id"`
	VendorID      string          `json:"vendor_id"`
	Pickup        location        `json:"pickup"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	DueOnDelivery decimal.Decimal `json:"due_on_delivery"`
}

// payloadOf maps domain events to their wire form. Unknown events are
// encoded as they are.
func payloadOf(event kernel.DomainEvent) any {
	switch e := event.(type) {
	case order.StatusChanged:
		p := statusPayload{
			OrderID:    e.OrderID.String(),
			CustomerID: e.CustomerID.String(),
			VendorID:   e.VendorID.String(),
			Status:     e.Status.String(),
		}
		if e.CourierID != nil {
			p.CourierID = lo.ToPtr(e.CourierID.String())
		}
		return p
	case order.CourierRequested:
		return courierRequestPayload{
			OrderID:       e.OrderID.String(),
			CourierID:     e.CourierID.String(),
			VendorID:      e.VendorID.String(),
			Pickup:        location{Lat: e.Pickup.Lat(), Lng: e.Pickup.Lng()},
			DeliveryFee:   e.DeliveryFee,
			DueOnDelivery: e.DueOnDelivery,
		}
	default:
		return event
	}
}
