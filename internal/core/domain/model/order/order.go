package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Draft carries everything checkout knows about a new order.
type Draft struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	VendorID         kernel.UUID
	Items            []LineItem
	Charges          Charges
	Fulfillment      FulfillmentMode
	Payment          PaymentMode
	DeliveryAddress  string
	DeliveryLocation *kernel.Location
	PickupLocation   kernel.Location
	CreatedAt        time.Time
}

// Snapshot is a persisted order: a draft plus the mutable lifecycle fields.
type Snapshot struct {
	Draft
	CourierID *kernel.UUID
	Status    Status
	Version   int
	UpdatedAt time.Time
}

// Order is the aggregate root of the order ledger. All status changes go through
// its methods, each of which checks the calling actor and the transition table
// and records a domain event.
//
// Persistence is optimistic: the repository writes a transition only if the row
// still carries Version(), so two racing transitions cannot both succeed.
type Order struct {
	kernel.EventRecorder

	id               kernel.UUID
	customerID       kernel.UUID
	vendorID         kernel.UUID
	courierID        *kernel.UUID
	status           Status
	fulfillment      FulfillmentMode
	payment          PaymentMode
	items            []LineItem
	charges          Charges
	deliveryAddress  string
	deliveryLocation *kernel.Location
	pickupLocation   kernel.Location
	version          int
	createdAt        time.Time
	updatedAt        time.Time
	isConstructed    bool
}

// NewOrder creates an order in Placed and records EventOrderPlaced.
func NewOrder(d Draft) (*Order, error) {
	o, err := build(Snapshot{Draft: d, Status: Placed})
	if err != nil {
		return nil, err
	}
	o.recordStatus(EventOrderPlaced)
	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. No event is recorded.
func RestoreOrder(s Snapshot) (*Order, error) {
	return build(s)
}

func build(s Snapshot) (*Order, error) {
	o := &Order{
		status:          s.Status,
		fulfillment:     s.Fulfillment,
		payment:         s.Payment,
		charges:         s.Charges,
		deliveryAddress: strings.TrimSpace(s.DeliveryAddress),
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}

	if err := errors.Join(
		o.setIDs(s.ID, s.CustomerID, s.VendorID),
		o.setItems(s.Items),
		o.setLocations(s.PickupLocation, s.DeliveryLocation),
		s.Status.Validate(),
		s.Fulfillment.Validate(),
		s.Payment.Validate(),
	); err != nil {
		return nil, err
	}

	if err := errors.Join(
		o.charges.ValidateFor(o.fulfillment, o.payment),
		o.validateSubtotal(),
		o.validateDestination(),
		o.setCourier(s.CourierID),
	); err != nil {
		return nil, err
	}

	o.isConstructed = true
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                    { return o.id }
func (o *Order) CustomerID() kernel.UUID            { return o.customerID }
func (o *Order) VendorID() kernel.UUID              { return o.vendorID }
func (o *Order) Courier() *kernel.UUID              { return o.courierID }
func (o *Order) Status() Status                     { return o.status }
func (o *Order) Fulfillment() FulfillmentMode       { return o.fulfillment }
func (o *Order) Payment() PaymentMode               { return o.payment }
func (o *Order) Charges() Charges                   { return o.charges }
func (o *Order) DeliveryAddress() string            { return o.deliveryAddress }
func (o *Order) DeliveryLocation() *kernel.Location { return o.deliveryLocation }
func (o *Order) PickupLocation() kernel.Location    { return o.pickupLocation }
func (o *Order) Version() int                       { return o.version }
func (o *Order) CreatedAt() time.Time               { return o.createdAt }
func (o *Order) UpdatedAt() time.Time               { return o.updatedAt }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// IsParty reports whether actor is the order's customer, vendor or courier.
func (o *Order) IsParty(actor kernel.UUID) bool {
	return o.customerID.IsEqual(actor) || o.vendorID.IsEqual(actor) || kernel.OptionalUUIDEqual(o.courierID, actor)
}

// NeedsCourier reports whether the order is ready, delivered by courier and still unmatched.
func (o *Order) NeedsCourier() bool {
	return o.fulfillment == Delivery && o.status == Ready && o.courierID == nil
}

// Persisted is called by the repository after a successful conditional write.
func (o *Order) Persisted(version int, at time.Time) {
	o.version = version
	o.updatedAt = at
}

// Accept moves Placed to Preparing on behalf of the owning vendor.
func (o *Order) Accept(vendorID kernel.UUID) error {
	return o.vendorTransition(vendorID, Preparing, "accept", EventOrderAccepted)
}

// Reject cancels an order the vendor has not yet marked ready.
func (o *Order) Reject(vendorID kernel.UUID) error {
	return o.vendorTransition(vendorID, Cancelled, "reject", EventOrderCancelled)
}

// MarkReady moves Preparing to Ready. Matching is the caller's concern.
func (o *Order) MarkReady(vendorID kernel.UUID) error {
	return o.vendorTransition(vendorID, Ready, "mark ready", EventOrderReady)
}

// HandOver completes a pickup order collected by the customer at the counter.
func (o *Order) HandOver(vendorID kernel.UUID) error {
	if !o.vendorID.IsEqual(vendorID) {
		return errs.NewForbiddenError("vendor "+vendorID.String(), "hand over order "+o.id.String())
	}
	if o.fulfillment != Pickup {
		return errs.NewInvalidStateError("order", o.status.String(), "hand over a delivery")
	}
	if o.status != Ready {
		return errs.NewInvalidStateError("order", o.status.String(), "hand over")
	}
	return o.vendorTransition(vendorID, Delivered, "hand over", EventOrderDelivered)
}

// AssignCourier records the matched courier. The status stays Ready.
// Assigning the courier already on the order is a no-op; any other
// assignment of a matched order fails.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		if o.courierID.IsEqual(courierID) {
			return nil
		}
		return errs.NewInvalidStateError("order", o.status.String(), "assign a second courier to")
	}
	if o.fulfillment != Delivery || o.status != Ready {
		return errs.NewInvalidStateError("order", o.status.String(), "assign a courier to")
	}

	o.courierID = &courierID
	o.Record(CourierRequested{
		OrderID:       o.id,
		CourierID:     courierID,
		VendorID:      o.vendorID,
		Pickup:        o.pickupLocation,
		DeliveryFee:   o.charges.DeliveryFee(),
		DueOnDelivery: o.charges.DueOnDelivery(),
	})
	return nil
}

// AcceptAssignment is the matched courier acknowledging the request.
func (o *Order) AcceptAssignment(courierID kernel.UUID) error {
	return o.courierTransition(courierID, Assigned, "accept assignment of", EventOrderAssigned)
}

func (o *Order) PickUp(courierID kernel.UUID) error {
	return o.courierTransition(courierID, PickedUp, "pick up", EventOrderPickedUp)
}

func (o *Order) StartDelivery(courierID kernel.UUID) error {
	return o.courierTransition(courierID, OnWay, "start delivery of", EventOrderOnWay)
}

// Deliver is the terminal courier transition. Settlement must be applied in
// the same transaction that persists it.
func (o *Order) Deliver(courierID kernel.UUID) error {
	if o.status != OnWay {
		return errs.NewInvalidStateError("order", o.status.String(), "deliver")
	}
	return o.courierTransition(courierID, Delivered, "deliver", EventOrderDelivered)
}

func (o *Order) vendorTransition(vendorID kernel.UUID, target Status, action, event string) error {
	if !o.vendorID.IsEqual(vendorID) {
		return errs.NewForbiddenError("vendor "+vendorID.String(), action+" order "+o.id.String())
	}
	return o.moveTo(target, action, event)
}

func (o *Order) courierTransition(courierID kernel.UUID, target Status, action, event string) error {
	if !kernel.OptionalUUIDEqual(o.courierID, courierID) {
		return errs.NewForbiddenError("courier "+courierID.String(), action+" order "+o.id.String())
	}
	return o.moveTo(target, action, event)
}

func (o *Order) moveTo(target Status, action, event string) error {
	next, err := o.status.transition(target, action)
	if err != nil {
		return err
	}
	o.status = next
	o.recordStatus(event)
	return nil
}

func (o *Order) recordStatus(event string) {
	o.Record(StatusChanged{
		Name:       event,
		OrderID:    o.id,
		CustomerID: o.customerID,
		VendorID:   o.vendorID,
		CourierID:  o.courierID,
		Status:     o.status,
	})
}

func (o *Order) setIDs(id, customerID, vendorID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), vendorID.Validate()); err != nil {
		return err
	}
	o.id, o.customerID, o.vendorID = id, customerID, vendorID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setLocations(pickup kernel.Location, delivery *kernel.Location) error {
	if err := pickup.Validate(); err != nil {
		return fmt.Errorf("pickup location: %w", err)
	}
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return fmt.Errorf("delivery location: %w", err)
		}
	}
	o.pickupLocation, o.deliveryLocation = pickup, delivery
	return nil
}

func (o *Order) setCourier(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
		if o.fulfillment == Pickup {
			return errs.NewValueIsInvalidErrorWithCause("courier", errors.New("pickup orders have no courier"))
		}
	}
	if courierID == nil && o.fulfillment == Delivery && o.status.RequiresCourier() {
		return errs.NewValueIsInvalidErrorWithCause("courier",
			fmt.Errorf("%s is not a valid status to have no courier", o.status))
	}
	o.courierID = courierID
	return nil
}

func (o *Order) validateSubtotal() error {
	sum := decimal.Zero
	for _, item := range o.items {
		sum = sum.Add(item.Total())
	}
	if !sum.Equal(o.charges.Subtotal()) {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("line items total %s but subtotal is %s", sum, o.charges.Subtotal()))
	}
	return nil
}

func (o *Order) validateDestination() error {
	if o.fulfillment != Delivery {
		return nil
	}
	var missing []error
	if o.deliveryLocation == nil {
		missing = append(missing, errs.NewValueIsRequiredError("delivery location"))
	}
	if o.deliveryAddress == "" {
		missing = append(missing, errs.NewValueIsRequiredError("delivery address"))
	}
	return errors.Join(missing...)
}
