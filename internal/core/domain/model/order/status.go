package order

import (
	"fmt"

	"quoteflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	NewInquiry ──> PendingPricing ──> WaitingClientApproval ──> OrderConfirmed
//	                     ^                     │
//	                     └─────────────────────┘ (client modifies quote)
//
//	OrderConfirmed ──> AwaitingPayment ──> PaymentCleared ──> InTransit ──> Delivered ──> Closed
//
// Closed is archival; orders are never deleted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// NewInquiry is the initial status of a client-submitted inquiry.
	NewInquiry

	// PendingPricing means the Pricing Service owes the order a quote.
	PendingPricing

	// WaitingClientApproval means a fully priced quote is waiting for the client.
	WaitingClientApproval

	// OrderConfirmed means the client accepted the quote.
	OrderConfirmed

	// AwaitingPayment means fulfillment is waiting for payment.
	AwaitingPayment

	// PaymentCleared means payment was received.
	PaymentCleared

	// InTransit means the goods are on their way to the client.
	InTransit

	// Delivered means the client confirmed receipt.
	Delivered

	// Closed is the terminal, archival status.
	Closed
)

var statusNames = map[Status]string{
	NewInquiry:            "NEW_INQUIRY",
	PendingPricing:        "PENDING_PRICING",
	WaitingClientApproval: "WAITING_CLIENT_APPROVAL",
	OrderConfirmed:        "ORDER_CONFIRMED",
	AwaitingPayment:       "AWAITING_PAYMENT",
	PaymentCleared:        "PAYMENT_CLEARED",
	InTransit:             "IN_TRANSIT",
	Delivered:             "DELIVERED",
	Closed:                "CLOSED",
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		NewInquiry,
		PendingPricing,
		WaitingClientApproval,
		OrderConfirmed,
		AwaitingPayment,
		PaymentCleared,
		InTransit,
		Delivered,
		Closed,
	}
}

// ParseStatus converts a wire name such as "IN_TRANSIT" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the value is one of the nine lifecycle statuses.
// Values read from the database or the API must pass it before use.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}
