// Package commands holds the write side of the fulfillment engine. Every
// handler validates its command, opens a unit of work, drives the aggregates
// and commits. Events recorded on the way are published by the unit of work
// after commit, never by the handler.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the
// repositories it touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	GroupCartRepoFactory interface {
		GroupCartRepository() ports.GroupCartRepository
	}

	SettlementRepoFactory interface {
		SettlementRepository() ports.SettlementRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// OrderUoW covers single-order transitions.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW covers courier presence updates.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// MatchUoW covers claiming a courier and recording it on the order.
	MatchUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	MatchUoWFactory interface {
		Create() MatchUoW
	}

	// DeliveryUoW covers the terminal transition and its settlement.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		SettlementRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// CheckoutUoW covers pricing an order from the catalog and storing it.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// GroupCartUoW covers cart creation and contributions.
	GroupCartUoW interface {
		TxManager
		GroupCartRepoFactory
		CatalogRepoFactory
	}

	GroupCartUoWFactory interface {
		Create() GroupCartUoW
	}

	// GroupCheckoutUoW covers converting a cart into an order.
	GroupCheckoutUoW interface {
		TxManager
		GroupCartRepoFactory
		CatalogRepoFactory
		OrderRepoFactory
	}

	GroupCheckoutUoWFactory interface {
		Create() GroupCheckoutUoW
	}
)
