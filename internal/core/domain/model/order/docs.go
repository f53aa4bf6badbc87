// Package order is the order ledger: the Order aggregate, its Status state
// machine, the immutable Charges and LineItem values captured at checkout, and
// the events raised by each transition.
//
// Business rules:
//   - every transition is taken by a specific actor; the vendor for accept,
//     reject, ready and hand over, the assigned courier for the rest
//   - transitions outside the table fail with errs.ErrInvalidState
//   - a wrong actor fails with errs.ErrForbidden
//   - line item prices never change after creation
package order
