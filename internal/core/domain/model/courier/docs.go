// Package courier holds the courier profile aggregate: presence (online flag and
// last known position), the signed cash balance and the currently claimed order.
package courier
