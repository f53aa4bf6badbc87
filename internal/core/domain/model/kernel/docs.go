// Package kernel holds the primitives shared by every aggregate of the
// fulfillment domain:
//   - UUID: entity identifiers
//   - Location: latitude/longitude with planar and great-circle distances
//   - DomainEvent and EventRecorder: facts raised by aggregates
package kernel
