package order

import (
	"errors"

	"quoteflow/internal/pkg/errs"
)

var (
	ErrQuoteIsNotFullyPriced = errors.New("every item must have a unit price")
	ErrQuoteHasNoItems       = errors.New("an order cannot have zero items")
)

// Guards carries the facts about the aggregate that transition guards depend on.
// ItemCount is the size of the item list the action would leave on the order: the committed
// list for pricing and confirmation, the filtered submitted list for ModifyQuote.
type Guards struct {
	ItemCount      int
	AllItemsPriced bool
}

type transitionKey struct {
	from   Status
	action Action
}

var transitions = map[transitionKey]Status{
	{NewInquiry, BeginPricing}:            PendingPricing,
	{PendingPricing, CompletePricing}:     WaitingClientApproval,
	{WaitingClientApproval, ConfirmQuote}: OrderConfirmed,
	{WaitingClientApproval, ModifyQuote}:  PendingPricing,
	{OrderConfirmed, AdvanceFulfillment}:  AwaitingPayment,
	{AwaitingPayment, AdvanceFulfillment}: PaymentCleared,
	{PaymentCleared, AdvanceFulfillment}:  InTransit,
	{InTransit, ConfirmDelivery}:          Delivered,
	{Delivered, Archive}:                  Closed,
}

// idempotentTargets lists the actions whose retry at the target status is a success.
var idempotentTargets = map[Action]Status{
	ConfirmQuote:    OrderConfirmed,
	ConfirmDelivery: Delivered,
}

// Transition decides the outcome of applying action to an order in status from.
//
// It is total and pure: every combination yields either the next status or an error, and
// nothing outside its arguments is read. An action from a status not listed as its source
// fails with *errs.StateConflictError. Guard failures fail with *errs.StateConflictError for
// pricing guards and *errs.ValueIsInvalidError for an empty ModifyQuote submission.
//
// Example:
//
//	next, err := order.Transition(order.WaitingClientApproval, order.ConfirmQuote,
//	    order.Guards{ItemCount: 2, AllItemsPriced: true})
//	// next == order.OrderConfirmed
func Transition(from Status, action Action, guards Guards) (Status, error) {
	to, ok := transitions[transitionKey{from: from, action: action}]
	if !ok {
		return Unknown, errs.NewStateConflictError(action.String(), from.String())
	}

	switch action {
	case CompletePricing, ConfirmQuote:
		if guards.ItemCount == 0 {
			return Unknown, errs.NewStateConflictErrorWithCause(action.String(), from.String(), ErrQuoteHasNoItems)
		}
		if !guards.AllItemsPriced {
			return Unknown, errs.NewStateConflictErrorWithCause(action.String(), from.String(), ErrQuoteIsNotFullyPriced)
		}
	case ModifyQuote:
		if guards.ItemCount == 0 {
			return Unknown, errs.NewValueIsInvalidErrorWithCause("items", ErrQuoteHasNoItems)
		}
	}

	return to, nil
}

// AlreadyApplied reports whether status is the target of an idempotent action, in which
// case a retry must succeed without a second transition.
func AlreadyApplied(status Status, action Action) bool {
	target, ok := idempotentTargets[action]
	return ok && status == target
}
