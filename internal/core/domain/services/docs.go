// Package services holds the domain services of the fulfillment engine:
//   - PaymentAllocator: tax and the upfront/on-delivery split of an order's total
//   - CourierMatcher: nearest available courier ranking within a radius
//   - SettlementLedger: courier balance change for a delivered order
//
// All three are pure; persistence and claiming live in the command handlers.
package services
