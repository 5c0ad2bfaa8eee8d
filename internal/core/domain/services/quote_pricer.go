package services

import (
	"errors"
	"fmt"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"
)

const pricingCollaborator = "pricing service"

var (
	// ErrQuoteIsIncomplete is returned when a pricing result does not cover every item.
	ErrQuoteIsIncomplete = errors.New("pricing result does not cover every item")

	// ErrPriceIsNotPositive is returned when a pricing result prices something at zero or less.
	ErrPriceIsNotPositive = errors.New("pricing result contains a non-positive price")

	// ErrPriceIsNotStorable is returned when a pricing result amount has fractions of a cent
	// or does not fit below 10^12.
	ErrPriceIsNotStorable = errors.New("pricing result contains an amount outside whole cents below 10^12")
)

// QuotePricer applies Pricing Service results to orders.
//
// Business rules:
//   - Only an order in PENDING_PRICING can be priced, checked before the collaborator is called
//   - A result must price every item of the order
//   - Every amount must be positive and a whole number of cents below 10^12
//   - A result replaces all earlier prices; nothing is merged
//
// Example usage:
//
//	pricer := services.NewQuotePricer()
//	if err := pricer.Ready(o); err != nil {
//	    return err // no call to the Pricing Service
//	}
//	quote, err := pricing.Reprice(ctx, o.Lines())
//	if err != nil {
//	    return err
//	}
//	if err := pricer.Apply(o, quote); err != nil {
//	    return err
//	}
type QuotePricer struct{}

// NewQuotePricer creates a new QuotePricer instance.
func NewQuotePricer() QuotePricer {
	return QuotePricer{}
}

// Ready reports whether the order may be sent to the Pricing Service.
func (p QuotePricer) Ready(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	_, err := order.Transition(o.Status(), order.CompletePricing, order.Guards{
		ItemCount:      len(o.Items()),
		AllItemsPriced: true,
	})
	return err
}

// Apply validates quote against the order and completes pricing.
// A malformed result is the collaborator's fault and is reported as
// errs.CollaboratorFailureError; the order is left unchanged.
func (p QuotePricer) Apply(o *order.Order, quote ports.PriceQuote) error {
	if err := p.Ready(o); err != nil {
		return err
	}

	prices := make(map[kernel.ProductRef]kernel.Money, len(quote.Lines))
	for _, line := range quote.Lines {
		if err := checkAmount(line.UnitPrice, line.ProductRef.String()); err != nil {
			return errs.NewCollaboratorFailureErrorWithCause(pricingCollaborator, err)
		}
		prices[line.ProductRef] = line.UnitPrice
	}

	for _, item := range o.Items() {
		if _, ok := prices[item.ProductRef()]; !ok {
			return errs.NewCollaboratorFailureErrorWithCause(pricingCollaborator,
				fmt.Errorf("%w: %s is missing", ErrQuoteIsIncomplete, item.ProductRef()))
		}
	}

	if err := checkAmount(quote.Total, "total"); err != nil {
		return errs.NewCollaboratorFailureErrorWithCause(pricingCollaborator, err)
	}

	return o.CompletePricing(prices, quote.Total)
}

func checkAmount(amount kernel.Money, subject string) error {
	if amount.Validate() != nil || !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrPriceIsNotPositive, subject)
	}
	if !amount.IsStorable() {
		return fmt.Errorf("%w: %s is %s", ErrPriceIsNotStorable, subject, amount.Decimal().String())
	}
	return nil
}
