package kernel

import (
	"errors"
	"fmt"

	"quoteflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// maxStoredAmount is the exclusive upper bound of a numeric(14, 2) column.
var maxStoredAmount = decimal.New(1, 12)

// Money is a non-negative monetary amount. Currency is implicit and shared by the
// whole order, so it is not modelled here.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// NewMoney creates a Money from a decimal. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount, isConstructed: true}, nil
}

// MoneyFromString parses a decimal string such as "10.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money is invalid", err)
	}
	return NewMoney(amount)
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Validate rejects Money that skipped its constructors.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// Decimal returns the amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsWholeCents reports whether the amount needs at most two decimal places, so String
// renders it without rounding.
func (m Money) IsWholeCents() bool {
	return m.amount.Equal(m.amount.Truncate(2))
}

// IsStorable reports whether the amount is whole cents and below 10^12.
func (m Money) IsStorable() bool {
	return m.IsWholeCents() && m.amount.LessThan(maxStoredAmount)
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Mul returns the amount multiplied by a whole quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), isConstructed: true}
}

// IsEqual compares amounts numerically, so "10" equals "10.00".
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
