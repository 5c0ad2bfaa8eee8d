// Package quote implements the Quote Editor: a client-side draft of an order's item list
// that is edited independently of the committed order and submitted as one ModifyQuote.
//
// A Draft never aliases the committed items. Abandoning it has no effect anywhere, and
// submitting it replaces the whole item list at once.
package quote

import (
	"errors"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"
)

var (
	ErrDraftIsNotConstructed = errors.New("Draft must be created via StartDraft")
	ErrDraftIsEmpty          = errors.New("draft has no line with a positive quantity")
	ErrDraftBelongsElsewhere = errors.New("draft was started from a different order")
)

// Line is one row of a draft. Unlike an order item its quantity may be zero, so the row
// stays visible to the client until the draft is submitted.
type Line struct {
	ProductRef kernel.ProductRef
	Quantity   int
	UnitPrice  order.Price
}

// ProductSet answers whether a product exists in the catalog.
type ProductSet map[kernel.ProductRef]struct{}

// NewProductSet builds a set from catalog references.
func NewProductSet(refs ...kernel.ProductRef) ProductSet {
	set := make(ProductSet, len(refs))
	for _, ref := range refs {
		set[ref] = struct{}{}
	}
	return set
}

// Contains reports whether ref is a known product.
func (s ProductSet) Contains(ref kernel.ProductRef) bool {
	_, ok := s[ref]
	return ok
}

// Draft is a staged copy of an order's item list.
type Draft struct {
	orderID       kernel.UUID
	lines         []Line
	isConstructed bool
}

// StartDraft copies the committed items of an order awaiting client approval.
// Any other status fails with a state conflict: there is no quote to edit.
func StartDraft(o *order.Order) (*Draft, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.WaitingClientApproval {
		return nil, errs.NewStateConflictError(order.ModifyQuote.String(), o.Status().String())
	}

	items := o.Items()
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return &Draft{orderID: o.ID(), lines: lines, isConstructed: true}, nil
}

// Validate ensures the draft was created via StartDraft.
func (d *Draft) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDraftIsNotConstructed
	}
	return nil
}

// OrderID returns the order the draft was started from.
func (d *Draft) OrderID() kernel.UUID {
	return d.orderID
}

// Lines returns a copy of every line, including zero-quantity ones.
func (d *Draft) Lines() []Line {
	lines := make([]Line, len(d.lines))
	copy(lines, d.lines)
	return lines
}

// Contains reports whether the draft has a line for ref.
func (d *Draft) Contains(ref kernel.ProductRef) bool {
	return d.indexOf(ref) >= 0
}

// SetQuantity sets the quantity of an existing line. Negative input is clamped to zero
// rather than rejected. A missing line is left alone.
func (d *Draft) SetQuantity(ref kernel.ProductRef, quantity int) {
	i := d.indexOf(ref)
	if i < 0 {
		return
	}
	d.lines[i].Quantity = max(quantity, 0)
}

// AddItem appends a line with quantity 1 and a pending price. It is a no-op returning false
// when the product is already in the draft or is unknown to the catalog.
func (d *Draft) AddItem(ref kernel.ProductRef, products ProductSet) bool {
	if ref.Validate() != nil || d.Contains(ref) || !products.Contains(ref) {
		return false
	}
	d.lines = append(d.lines, Line{ProductRef: ref, Quantity: 1, UnitPrice: order.PendingPrice()})
	return true
}

// RemoveItem deletes the line for ref.
func (d *Draft) RemoveItem(ref kernel.ProductRef) {
	i := d.indexOf(ref)
	if i < 0 {
		return
	}
	d.lines = append(d.lines[:i:i], d.lines[i+1:]...)
}

// Payload returns what a submission sends: lines with a positive quantity as
// product/quantity pairs. Client-held prices are never part of it.
func (d *Draft) Payload() []order.QuoteLine {
	payload := make([]order.QuoteLine, 0, len(d.lines))
	for _, line := range d.lines {
		if line.Quantity > 0 {
			payload = append(payload, order.QuoteLine{ProductRef: line.ProductRef, Quantity: line.Quantity})
		}
	}
	return payload
}

// Submit applies the draft to its order as a ModifyQuote. An empty payload fails with a
// validation error before the order is touched. On success every item of the order is
// pending pricing and the total is pending.
func (d *Draft) Submit(o *order.Order) error {
	if err := errors.Join(d.Validate(), o.Validate()); err != nil {
		return err
	}
	if !o.ID().IsEqual(d.orderID) {
		return errs.NewValueIsInvalidErrorWithCause("draft", ErrDraftBelongsElsewhere)
	}

	payload := d.Payload()
	if len(payload) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", ErrDraftIsEmpty)
	}

	return o.ModifyQuote(payload)
}

func (d *Draft) indexOf(ref kernel.ProductRef) int {
	for i, line := range d.lines {
		if line.ProductRef == ref {
			return i
		}
	}
	return -1
}
