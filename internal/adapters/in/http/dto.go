package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/groupcart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type locationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l *locationDTO) toDomain(field string) (*kernel.Location, error) {
	if l == nil {
		return nil, nil
	}
	loc, err := kernel.NewLocation(l.Lat, l.Lng)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return &loc, nil
}

func locationOf(l *kernel.Location) *locationDTO {
	if l == nil {
		return nil
	}
	return &locationDTO{Lat: l.Lat(), Lng: l.Lng()}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	return lo.ToPtr(id.String())
}

type placeOrderRequest struct {
	VendorID         string             `json:"vendor_id"`
	Items            []orderItemRequest `json:"items"`
	Fulfillment      string             `json:"fulfillment"`
	Payment          string             `json:"payment"`
	DeliveryAddress  string             `json:"delivery_address"`
	DeliveryLocation *locationDTO       `json:"delivery_location"`
}

type orderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type courierStatusRequest struct {
	Online   bool         `json:"online"`
	Location *locationDTO `json:"location"`
}

type registerCourierRequest struct {
	Name string `json:"name"`
}

type addGroupCartItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Label      string `json:"label"`
}

type checkoutGroupCartRequest struct {
	Payment          string       `json:"payment"`
	DeliveryAddress  string       `json:"delivery_address"`
	DeliveryLocation *locationDTO `json:"delivery_location"`
}

type chargesResponse struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Total         decimal.Decimal `json:"total"`
	PaidUpfront   decimal.Decimal `json:"paid_upfront"`
	DueOnDelivery decimal.Decimal `json:"due_on_delivery"`
}

type orderItemResponse struct {
	MenuItemID  string          `json:"menu_item_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Contributor string          `json:"contributor,omitempty"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	CustomerID       string              `json:"customer_id"`
	VendorID         string              `json:"vendor_id"`
	CourierID        *string             `json:"courier_id"`
	Status           string              `json:"status"`
	Fulfillment      string              `json:"fulfillment"`
	Payment          string              `json:"payment"`
	Charges          chargesResponse     `json:"charges"`
	DeliveryAddress  string              `json:"delivery_address,omitempty"`
	DeliveryLocation *locationDTO        `json:"delivery_location,omitempty"`
	PickupLocation   locationDTO         `json:"pickup_location"`
	Items            []orderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func orderFromDomain(o *order.Order) orderResponse {
	c := o.Charges()
	return orderResponse{
		ID:          o.ID().String(),
		CustomerID:  o.CustomerID().String(),
		VendorID:    o.VendorID().String(),
		CourierID:   optionalID(o.Courier()),
		Status:      o.Status().String(),
		Fulfillment: string(o.Fulfillment()),
		Payment:     string(o.Payment()),
		Charges: chargesResponse{
			Subtotal:      c.Subtotal(),
			Tax:           c.Tax(),
			DeliveryFee:   c.DeliveryFee(),
			Total:         c.Total(),
			PaidUpfront:   c.PaidUpfront(),
			DueOnDelivery: c.DueOnDelivery(),
		},
		DeliveryAddress:  o.DeliveryAddress(),
		DeliveryLocation: locationOf(o.DeliveryLocation()),
		PickupLocation:   locationDTO{Lat: o.PickupLocation().Lat(), Lng: o.PickupLocation().Lng()},
		Items: lo.Map(o.Items(), func(i order.LineItem, _ int) orderItemResponse {
			return orderItemResponse{
				MenuItemID:  i.MenuItemID().String(),
				Quantity:    i.Quantity(),
				UnitPrice:   i.UnitPrice(),
				Contributor: i.Contributor(),
			}
		}),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func orderFromView(v queries.OrderView) orderResponse {
	return orderResponse{
		ID:          v.ID.String(),
		CustomerID:  v.CustomerID.String(),
		VendorID:    v.VendorID.String(),
		CourierID:   optionalID(v.CourierID),
		Status:      v.Status,
		Fulfillment: v.Fulfillment,
		Payment:     v.Payment,
		Charges: chargesResponse{
			Subtotal:      v.Subtotal,
			Tax:           v.Tax,
			DeliveryFee:   v.DeliveryFee,
			Total:         v.Total,
			PaidUpfront:   v.PaidUpfront,
			DueOnDelivery: v.DueOnDelivery,
		},
		DeliveryAddress:  v.DeliveryAddress,
		DeliveryLocation: locationOf(v.DeliveryLocation),
		PickupLocation:   locationDTO{Lat: v.PickupLocation.Lat(), Lng: v.PickupLocation.Lng()},
		Items: lo.Map(v.Items, func(i queries.OrderItemView, _ int) orderItemResponse {
			return orderItemResponse{
				MenuItemID:  i.MenuItemID.String(),
				Quantity:    i.Quantity,
				UnitPrice:   i.UnitPrice,
				Contributor: i.Contributor,
			}
		}),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type readyResponse struct {
	Order     orderResponse `json:"order"`
	CourierID *string       `json:"courier_id"`
}

type matchResponse struct {
	OrderID   string `json:"order_id"`
	CourierID string `json:"courier_id"`
}

type settlementResponse struct {
	OrderID       string          `json:"order_id"`
	CourierID     string          `json:"courier_id"`
	Collected     decimal.Decimal `json:"collected"`
	Fee           decimal.Decimal `json:"fee"`
	BalanceChange decimal.Decimal `json:"balance_change"`
	SettledAt     time.Time       `json:"settled_at"`
}

func settlementFromDomain(e settlement.Entry) settlementResponse {
	return settlementResponse{
		OrderID:       e.OrderID().String(),
		CourierID:     e.CourierID().String(),
		Collected:     e.Collected(),
		Fee:           e.Fee(),
		BalanceChange: e.BalanceChange(),
		SettledAt:     e.SettledAt(),
	}
}

type courierResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Online        bool            `json:"online"`
	Location      *locationDTO    `json:"location"`
	CashBalance   decimal.Decimal `json:"cash_balance"`
	ActiveOrderID *string         `json:"active_order_id"`
}

func courierFromDomain(c *courier.Courier) courierResponse {
	return courierResponse{
		ID:            c.ID().String(),
		Name:          c.Name(),
		Online:        c.IsOnline(),
		Location:      locationOf(c.Location()),
		CashBalance:   c.CashBalance(),
		ActiveOrderID: optionalID(c.ActiveOrder()),
	}
}

func courierFromProfile(p queries.CourierProfile) courierResponse {
	return courierResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Online:        p.IsOnline,
		Location:      locationOf(p.Location),
		CashBalance:   p.CashBalance,
		ActiveOrderID: optionalID(p.ActiveOrderID),
	}
}

type groupCartItemResponse struct {
	MenuItemID    string           `json:"menu_item_id"`
	Name          string           `json:"name,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Quantity      int              `json:"quantity"`
	Label         string           `json:"label"`
	ContributorID *string          `json:"contributor_id"`
	AddedAt       time.Time        `json:"added_at"`
}

type groupCartResponse struct {
	ID       string                  `json:"id"`
	Code     string                  `json:"code"`
	HostID   string                  `json:"host_id"`
	VendorID *string                 `json:"vendor_id"`
	Items    []groupCartItemResponse `json:"items"`
	Subtotal *decimal.Decimal        `json:"subtotal,omitempty"`
}

func groupCartFromDomain(c *groupcart.Cart) groupCartResponse {
	return groupCartResponse{
		ID:       c.ID().String(),
		Code:     c.Code().String(),
		HostID:   c.HostID().String(),
		VendorID: optionalID(c.VendorID()),
		Items:    lo.Map(c.Items(), func(i groupcart.Contribution, _ int) groupCartItemResponse { return contributionOf(i) }),
	}
}

func contributionOf(i groupcart.Contribution) groupCartItemResponse {
	return groupCartItemResponse{
		MenuItemID:    i.MenuItemID.String(),
		Quantity:      i.Quantity,
		Label:         i.Label,
		ContributorID: optionalID(i.ContributorID),
		AddedAt:       i.AddedAt,
	}
}

func groupCartFromView(v queries.GroupCartView) groupCartResponse {
	return groupCartResponse{
		ID:       v.ID.String(),
		Code:     v.Code,
		HostID:   v.HostID.String(),
		VendorID: optionalID(v.VendorID),
		Subtotal: lo.ToPtr(v.Subtotal),
		Items: lo.Map(v.Items, func(i queries.GroupCartItemView, _ int) groupCartItemResponse {
			return groupCartItemResponse{
				MenuItemID:    i.MenuItemID.String(),
				Name:          i.Name,
				UnitPrice:     lo.ToPtr(i.UnitPrice),
				Quantity:      i.Quantity,
				Label:         i.Label,
				ContributorID: optionalID(i.ContributorID),
				AddedAt:       i.AddedAt,
			}
		}),
	}
}
