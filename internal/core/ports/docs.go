// Package ports defines the contracts between the fulfillment core and its
// adapters: transactional repositories for orders, couriers, group carts and
// settlements, the read-only catalog, the outbound event channel and the
// heatmap snapshot cache.
//
// Every repository returned by a UnitOfWork runs inside that unit's
// transaction. Writes that depend on current state are conditional updates
// evaluated by the store, never a read followed by a blind write.
package ports
