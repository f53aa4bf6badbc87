package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Placed ──> Preparing ──> Ready ──┬──> Assigned ──┐
//	   │           │           │     └───────────────┴──> PickedUp ──> OnWay ──> Delivered
//	   └───────────┴──> Cancelled    └──> Delivered (pickup orders, handed over by the vendor)
//
// Delivered and Cancelled are terminal. No transition leads back to Placed.
type Status int

const (
	Unknown Status = iota
	Placed
	Preparing
	Ready
	Assigned
	PickedUp
	OnWay
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "UNKNOWN",
	Placed:    "PLACED",
	Preparing: "PREPARING",
	Ready:     "READY",
	Assigned:  "ASSIGNED",
	PickedUp:  "PICKED_UP",
	OnWay:     "ON_WAY",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

// aliases accepted by ParseStatus in addition to the canonical names.
var statusAliases = map[string]Status{
	"ACCEPTED":         Preparing,
	"READY_FOR_PICKUP": Ready,
}

// transitions is the complete table of allowed edges.
var transitions = map[Status][]Status{
	Placed:    {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Assigned, PickedUp, Delivered},
	Assigned:  {PickedUp},
	PickedUp:  {OnWay},
	OnWay:     {Delivered},
}

// ParseStatus reads a canonical status name or one of its aliases, case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if status != Unknown && n == name {
			return status, nil
		}
	}
	if status, ok := statusAliases[name]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next lists the statuses reachable in one step.
func (s Status) Next() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the edge s -> target is in the table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// RequiresCourier reports whether an order in this status must carry a courier
// reference when it is fulfilled by delivery.
func (s Status) RequiresCourier() bool {
	return s == Assigned || s == PickedUp || s == OnWay
}

// transition returns target if the edge exists, otherwise an InvalidStateError
// naming the attempted action.
func (s Status) transition(target Status, action string) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidStateError("order", s.String(), action)
	}
	return target, nil
}
