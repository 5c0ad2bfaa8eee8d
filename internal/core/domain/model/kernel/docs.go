// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identifiers for orders and domain events
//   - Money: non-negative monetary amounts backed by shopspring/decimal
//   - ProductRef: a non-owning reference to a catalog product
//
// All kernel types are immutable values. Their zero values are invalid and are rejected
// by Validate, so a value that skipped its constructor cannot leak into an aggregate.
package kernel
