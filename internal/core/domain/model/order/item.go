package order

import (
	"fmt"
	"math"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/pkg/errs"
)

// MaxQuantity is the largest quantity of one line.
const MaxQuantity = math.MaxInt32

// Item is a committed order line. Its quantity is always positive: a zero quantity only
// exists inside a quote draft and is filtered out before it reaches an Order.
type Item struct {
	productRef kernel.ProductRef
	quantity   int
	unitPrice  Price
}

// NewItem validates and creates an order line.
func NewItem(productRef kernel.ProductRef, quantity int, unitPrice Price) (Item, error) {
	if err := productRef.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > MaxQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	return Item{productRef: productRef, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i Item) ProductRef() kernel.ProductRef {
	return i.productRef
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() Price {
	return i.unitPrice
}

// LineTotal returns quantity times unit price, or false while the line is pending pricing.
func (i Item) LineTotal() (kernel.Money, bool) {
	amount, ok := i.unitPrice.Amount()
	if !ok {
		return kernel.Money{}, false
	}
	return amount.Mul(i.quantity), true
}

// QuoteLine is the client-controlled part of an item: the only data accepted from a client
// when a quote is modified, and the only data sent to the Pricing Service.
type QuoteLine struct {
	ProductRef kernel.ProductRef
	Quantity   int
}
