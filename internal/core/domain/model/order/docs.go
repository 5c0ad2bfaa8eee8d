// Package order implements the Order aggregate and the order lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding items, status, total and version together
//   - Status and Action: the enumerated lifecycle states and the actions that move between them
//   - Transition: a pure function deciding every (status, action, guards) combination
//   - Price: a tagged variant that distinguishes a real unit price from pending pricing
//   - ProgressOf: the four client-facing progress steps derived from a status
//
// Lifecycle (happy path, left to right):
//
//	NEW_INQUIRY -> PENDING_PRICING -> WAITING_CLIENT_APPROVAL -> ORDER_CONFIRMED ->
//	AWAITING_PAYMENT -> PAYMENT_CLEARED -> IN_TRANSIT -> DELIVERED -> CLOSED
//
// with one back-edge WAITING_CLIENT_APPROVAL -> PENDING_PRICING when the client modifies the quote.
//
// Every mutation of an Order goes through Transition first, so an illegal action fails with
// a state conflict and leaves the aggregate untouched.
package order
