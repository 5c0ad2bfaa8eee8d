// Package services provides domain services for operations that need more than one
// aggregate or a collaborator's answer to complete.
//
// The package includes:
//   - QuotePricer: applies a Pricing Service result to an order awaiting its price
package services
