package commands

import (
	"context"
	"errors"
	"fmt"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/domain/model/quote"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"
)

var (
	ErrUnknownProduct       = errors.New("product is not in the catalog")
	ErrIdempotencyKeyReused = errors.New("idempotency key was already used with a different payload")
)

// ModifyOrderCommandHandler applies an edited quote to an order awaiting client approval.
//
// The submission is staged in a quote.Draft started from the committed items and then
// submitted, which replaces the whole item list, marks every item pending pricing and sends
// the order back to PENDING_PRICING.
//
// With an idempotency key the handler is safe to retry: a replay of the same payload returns
// the current order without a second transition, and reusing the key for another payload
// fails with a validation error. The key is stored in the transaction that saves the order.
type ModifyOrderCommandHandler struct {
	uowFactory ModifyOrderUoWFactory
	catalog    ports.ProductCatalog
}

// NewModifyOrderCommandHandler creates a handler that checks submissions against catalog.
func NewModifyOrderCommandHandler(uowFactory ModifyOrderUoWFactory, catalog ports.ProductCatalog) ModifyOrderCommandHandler {
	return ModifyOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle returns the order in PENDING_PRICING, or the current order for a replay.
func (h *ModifyOrderCommandHandler) Handle(ctx context.Context, cmd ModifyOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Load(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	replayed, err := h.isReplay(ctx, uow.IdempotencyStore(), cmd)
	if err != nil {
		return nil, err
	}
	if replayed {
		return o, nil
	}

	draft, err := quote.StartDraft(o)
	if err != nil {
		return nil, err
	}

	products, err := h.products(ctx)
	if err != nil {
		return nil, err
	}

	if err = stage(draft, cmd.Lines(), products); err != nil {
		return nil, err
	}

	if err = draft.Submit(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Save(ctx, o, o.Version()); err != nil {
		return nil, err
	}

	if cmd.IdempotencyKey() != "" {
		if err = uow.IdempotencyStore().Remember(ctx, ports.IdempotencyRecord{
			OrderID:     o.ID(),
			Key:         cmd.IdempotencyKey(),
			Fingerprint: cmd.Fingerprint(),
		}); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *ModifyOrderCommandHandler) isReplay(ctx context.Context, store ports.IdempotencyStore, cmd ModifyOrderCommand) (bool, error) {
	if cmd.IdempotencyKey() == "" {
		return false, nil
	}

	record, found, err := store.Find(ctx, cmd.OrderID(), cmd.IdempotencyKey())
	if err != nil || !found {
		return false, err
	}

	if record.Fingerprint != cmd.Fingerprint() {
		return false, errs.NewValueIsInvalidErrorWithCause("idempotencyKey", ErrIdempotencyKeyReused)
	}
	return true, nil
}

// products returns the set of products that may be added to a quote. Committed items stay
// editable even if their product was deactivated since.
func (h *ModifyOrderCommandHandler) products(ctx context.Context) (quote.ProductSet, error) {
	products, err := h.catalog.List(ctx)
	if err != nil {
		return nil, errs.NewCollaboratorFailureErrorWithCause("catalog", err)
	}

	refs := make([]kernel.ProductRef, 0, len(products))
	for _, p := range products {
		if p.Active() {
			refs = append(refs, p.Ref())
		}
	}
	return quote.NewProductSet(refs...), nil
}

// stage turns the draft into the submitted list: committed lines that were left out are
// removed, the others get the submitted quantity, and new products are added.
func stage(draft *quote.Draft, lines []order.QuoteLine, products quote.ProductSet) error {
	submitted := make(map[kernel.ProductRef]struct{}, len(lines))
	for _, line := range lines {
		submitted[line.ProductRef] = struct{}{}
	}

	for _, line := range draft.Lines() {
		if _, ok := submitted[line.ProductRef]; !ok {
			draft.RemoveItem(line.ProductRef)
		}
	}

	for _, line := range lines {
		if line.Quantity > 0 && !draft.Contains(line.ProductRef) && !draft.AddItem(line.ProductRef, products) {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("%w: %s", ErrUnknownProduct, line.ProductRef))
		}
		draft.SetQuantity(line.ProductRef, line.Quantity)
	}

	return nil
}
