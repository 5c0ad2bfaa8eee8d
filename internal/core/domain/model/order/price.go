package order

import (
	"fmt"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/pkg/errs"
)

const pendingLabel = "TBD"

// Price is either a strictly positive amount or pending pricing.
// The zero value is pending, so a freshly added line is never mistaken for a free one.
type Price struct {
	amount kernel.Money
	priced bool
}

// PendingPrice returns the "not yet priced" variant.
func PendingPrice() Price {
	return Price{}
}

// PricedAt returns the priced variant. Zero is not a price: it would be indistinguishable
// from pending on the wire, so it is rejected. So is an amount that renders as "0.00" or
// does not fit into whole cents below 10^12.
func PricedAt(amount kernel.Money) (Price, error) {
	if err := amount.Validate(); err != nil {
		return Price{}, err
	}
	if !amount.IsPositive() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid",
			fmt.Errorf("%s is not greater than 0", amount),
		)
	}
	if !amount.IsStorable() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid",
			fmt.Errorf("%s is not a whole number of cents below 10^12", amount.Decimal().String()),
		)
	}
	return Price{amount: amount, priced: true}, nil
}

// IsPending reports whether the price is still owed by the Pricing Service.
func (p Price) IsPending() bool {
	return !p.priced
}

// Amount returns the amount and true for a priced value, or false while pending.
func (p Price) Amount() (kernel.Money, bool) {
	return p.amount, p.priced
}

// IsEqual compares variants and, for priced values, amounts.
func (p Price) IsEqual(other Price) bool {
	if p.priced != other.priced {
		return false
	}
	return !p.priced || p.amount.IsEqual(other.amount)
}

func (p Price) String() string {
	if !p.priced {
		return pendingLabel
	}
	return p.amount.String()
}
