package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDuplicateProductRef is returned when an item list names the same product twice.
	ErrDuplicateProductRef = errors.New("product references must be unique")
)

// Order is the aggregate root of one client's negotiated purchase request.
//
// Order follows these invariants:
//   - Status is always one of the nine lifecycle statuses
//   - Items are non-empty, unique by product reference, and every quantity is positive
//   - The total is priced only when every item is priced, otherwise it is pending
//   - Items, total and status change together inside one method, never separately
//   - Version counts durable saves and guards against lost updates
//
// The struct uses private fields; all mutations go through Transition.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientRef identifies the owning client
	clientRef string

	// status represents the current state in the order lifecycle
	status Status

	// items is the committed item list
	items []Item

	// total is the authoritative order value from the Pricing Service
	total Price

	// createdAt is the inquiry time
	createdAt time.Time

	// version is the optimistic-concurrency counter of the stored order
	version int64

	// events are transitions applied since the order was loaded
	events []StatusChanged

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an order from a client inquiry in NewInquiry status, with every item
// pending pricing and version 0.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "client-7", []order.QuoteLine{
//	    {ProductRef: "A", Quantity: 5},
//	}, time.Now())
func NewOrder(id kernel.UUID, clientRef string, lines []QuoteLine, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        NewInquiry,
		total:         PendingPrice(),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	items, itemsErr := itemsFromLines(lines)
	if err := errors.Join(
		o.setID(id),
		o.setClientRef(clientRef),
		itemsErr,
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("items", ErrQuoteHasNoItems)
	}
	o.items = items

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. It re-checks every invariant, so a
// corrupt row surfaces as an error instead of an inconsistent aggregate.
func RestoreOrder(
	id kernel.UUID,
	clientRef string,
	status Status,
	items []Item,
	total Price,
	createdAt time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientRef(clientRef),
		o.setStatus(status),
		o.setItems(items),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}
	if !total.IsPending() && !o.IsFullyPriced() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total is invalid",
			errors.New("a priced total requires every item to be priced"),
		)
	}
	o.total = total

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ClientRef() string {
	return o.clientRef
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the version the order was loaded with, or last saved as.
func (o *Order) Version() int64 {
	return o.version
}

// Items returns a copy of the committed item list.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Lines returns the committed items as product/quantity pairs, the shape sent to pricing.
func (o *Order) Lines() []QuoteLine {
	lines := make([]QuoteLine, 0, len(o.items))
	for _, item := range o.items {
		lines = append(lines, QuoteLine{ProductRef: item.productRef, Quantity: item.quantity})
	}
	return lines
}

// TotalOrderValue returns the total. It is pending whenever any item is pending.
func (o *Order) TotalOrderValue() Price {
	return o.total
}

// IsFullyPriced reports whether every committed item has a unit price.
func (o *Order) IsFullyPriced() bool {
	return allPriced(o.items)
}

// BeginPricing hands a new inquiry over to pricing.
func (o *Order) BeginPricing() error {
	next, err := Transition(o.status, BeginPricing, o.guards())
	if err != nil {
		return err
	}

	o.apply(BeginPricing, next, o.items, o.total)
	return nil
}

// CompletePricing replaces every unit price and the total with the Pricing Service result.
//
// Prices are looked up by product reference. A product missing from prices leaves its item
// pending, which fails the "every item priced" guard, so a partial result is never applied.
func (o *Order) CompletePricing(prices map[kernel.ProductRef]kernel.Money, total kernel.Money) error {
	priced := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		price := PendingPrice()
		if amount, ok := prices[item.productRef]; ok {
			if p, err := PricedAt(amount); err == nil {
				price = p
			}
		}
		priced = append(priced, Item{productRef: item.productRef, quantity: item.quantity, unitPrice: price})
	}

	next, err := Transition(o.status, CompletePricing, Guards{ItemCount: len(priced), AllItemsPriced: allPriced(priced)})
	if err != nil {
		return err
	}

	totalPrice, err := PricedAt(total)
	if err != nil {
		return err
	}

	o.apply(CompletePricing, next, priced, totalPrice)
	return nil
}

// ConfirmQuote accepts the priced quote. It returns false without error when the order is
// already confirmed, so a retried confirmation succeeds without a second transition.
func (o *Order) ConfirmQuote() (bool, error) {
	if AlreadyApplied(o.status, ConfirmQuote) {
		return false, nil
	}

	next, err := Transition(o.status, ConfirmQuote, o.guards())
	if err != nil {
		return false, err
	}

	o.apply(ConfirmQuote, next, o.items, o.total)
	return true, nil
}

// ModifyQuote replaces the item list with a client submission and sends the order back to
// pricing.
//
// Lines with a quantity of zero or less are dropped. Every resulting item is pending pricing
// and the total becomes pending: one edited line invalidates the whole priced set.
// An empty result fails with a validation error.
func (o *Order) ModifyQuote(lines []QuoteLine) error {
	kept := make([]QuoteLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}

	next, err := Transition(o.status, ModifyQuote, Guards{ItemCount: len(kept), AllItemsPriced: false})
	if err != nil {
		return err
	}

	items, err := itemsFromLines(kept)
	if err != nil {
		return err
	}

	o.apply(ModifyQuote, next, items, PendingPrice())
	return nil
}

// AdvanceFulfillment moves a confirmed order one step along
// ORDER_CONFIRMED -> AWAITING_PAYMENT -> PAYMENT_CLEARED -> IN_TRANSIT.
func (o *Order) AdvanceFulfillment() error {
	next, err := Transition(o.status, AdvanceFulfillment, o.guards())
	if err != nil {
		return err
	}

	o.apply(AdvanceFulfillment, next, o.items, o.total)
	return nil
}

// ConfirmDelivery records receipt by the client. Like ConfirmQuote it is idempotent at its
// target: a retry on a delivered order returns false without error.
func (o *Order) ConfirmDelivery() (bool, error) {
	if AlreadyApplied(o.status, ConfirmDelivery) {
		return false, nil
	}

	next, err := Transition(o.status, ConfirmDelivery, o.guards())
	if err != nil {
		return false, err
	}

	o.apply(ConfirmDelivery, next, o.items, o.total)
	return true, nil
}

// Archive closes a delivered order.
func (o *Order) Archive() error {
	next, err := Transition(o.status, Archive, o.guards())
	if err != nil {
		return err
	}

	o.apply(Archive, next, o.items, o.total)
	return nil
}

// DomainEvents returns the transitions applied since the order was loaded.
func (o *Order) DomainEvents() []StatusChanged {
	events := make([]StatusChanged, len(o.events))
	copy(events, o.events)
	return events
}

// ClearDomainEvents drops recorded events once they are stored in the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// IncrementVersion is called by repositories after a save became durable.
func (o *Order) IncrementVersion() {
	o.version++
}

// apply is the single place where status, items and total change.
func (o *Order) apply(action Action, next Status, items []Item, total Price) {
	o.events = append(o.events, StatusChanged{
		EventID:    kernel.NewUUID(),
		OrderID:    o.id,
		Action:     action,
		From:       o.status,
		To:         next,
		Version:    o.version + 1,
		OccurredAt: time.Now().UTC(),
	})
	o.status = next
	o.items = items
	o.total = total
}

func (o *Order) guards() Guards {
	return Guards{ItemCount: len(o.items), AllItemsPriced: allPriced(o.items)}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientRef(clientRef string) error {
	clientRef = strings.TrimSpace(clientRef)
	if clientRef == "" {
		return errs.NewValueIsRequiredError("clientRef")
	}
	o.clientRef = clientRef
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", ErrQuoteHasNoItems)
	}

	seen := make(map[kernel.ProductRef]struct{}, len(items))
	for _, item := range items {
		if _, err := NewItem(item.productRef, item.quantity, item.unitPrice); err != nil {
			return err
		}
		if _, dup := seen[item.productRef]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("%w: %s", ErrDuplicateProductRef, item.productRef))
		}
		seen[item.productRef] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	o.version = version
	return nil
}

// itemsFromLines builds pending-priced items from client lines, rejecting duplicates and
// non-positive quantities.
func itemsFromLines(lines []QuoteLine) ([]Item, error) {
	items := make([]Item, 0, len(lines))
	seen := make(map[kernel.ProductRef]struct{}, len(lines))
	for _, line := range lines {
		item, err := NewItem(line.ProductRef, line.Quantity, PendingPrice())
		if err != nil {
			return nil, err
		}
		if _, dup := seen[line.ProductRef]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("%w: %s", ErrDuplicateProductRef, line.ProductRef))
		}
		seen[line.ProductRef] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func allPriced(items []Item) bool {
	for _, item := range items {
		if item.unitPrice.IsPending() {
			return false
		}
	}
	return true
}
