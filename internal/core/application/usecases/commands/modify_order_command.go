package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"
	"quoteflow/internal/pkg/guard"
)

const maxIdempotencyKeyLength = 128

var (
	ErrModifyOrderCommandIsNotConstructed = errors.New(
		"ModifyOrderCommand must be created via NewModifyOrderCommand constructor",
	)
	ErrDuplicateLine = errors.New("each product may appear only once")
)

// ModifyOrderCommand carries a client's edited quote: the complete item list that replaces
// the committed one, and an optional idempotency key.
//
// Lines with a quantity of zero or less stay in the command; the order drops them when the
// quote is applied. A list left empty by that is rejected there.
//
// Example:
//
//	cmd, err := NewModifyOrderCommand(orderID, []order.QuoteLine{
//	    {ProductRef: "A", Quantity: 3},
//	    {ProductRef: "C", Quantity: 1},
//	}, r.Header.Get("Idempotency-Key"))
type ModifyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	lines          []order.QuoteLine
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewModifyOrderCommand validates the identifier, the product references and the key.
func NewModifyOrderCommand(orderID kernel.UUID, lines []order.QuoteLine, idempotencyKey string) (ModifyOrderCommand, error) {
	cmd := ModifyOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return ModifyOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ModifyOrderCommand) Validate() error {
	return c.guard.Validate(ErrModifyOrderCommandIsNotConstructed)
}

func (c ModifyOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns a copy of the submitted lines.
func (c ModifyOrderCommand) Lines() []order.QuoteLine {
	lines := make([]order.QuoteLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IdempotencyKey returns the caller token, or "" when none was sent.
func (c ModifyOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// Fingerprint identifies the effective payload: the lines with a positive quantity,
// ordered by product. Two submissions with the same fingerprint modify an order the same way.
func (c ModifyOrderCommand) Fingerprint() string {
	effective := make([]order.QuoteLine, 0, len(c.lines))
	for _, line := range c.lines {
		if line.Quantity > 0 {
			effective = append(effective, line)
		}
	}
	slices.SortFunc(effective, func(a, b order.QuoteLine) int {
		return strings.Compare(string(a.ProductRef), string(b.ProductRef))
	})

	h := sha256.New()
	for _, line := range effective {
		_, _ = fmt.Fprintf(h, "%s\x00%d\n", line.ProductRef, line.Quantity)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *ModifyOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ModifyOrderCommand) setLines(lines []order.QuoteLine) error {
	seen := make(map[kernel.ProductRef]struct{}, len(lines))
	normalized := make([]order.QuoteLine, 0, len(lines))
	for _, line := range lines {
		ref, err := kernel.NewProductRef(string(line.ProductRef))
		if err != nil {
			return err
		}
		if _, dup := seen[ref]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("%w: %s", ErrDuplicateLine, ref))
		}
		seen[ref] = struct{}{}
		normalized = append(normalized, order.QuoteLine{ProductRef: ref, Quantity: line.Quantity})
	}

	c.lines = normalized
	return nil
}

func (c *ModifyOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotencyKey", len(key), 0, maxIdempotencyKeyLength)
	}

	c.idempotencyKey = key
	return nil
}
