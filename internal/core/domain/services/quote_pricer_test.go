package services_test

import (
	"testing"
	"time"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/domain/services"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotePricer_Ready(t *testing.T) {
	pricer := services.NewQuotePricer()

	t.Run("should accept an order pending pricing", func(t *testing.T) {
		require.NoError(t, pricer.Ready(pendingPricingOrder(t)))
	})

	t.Run("should reject other statuses", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "client", []order.QuoteLine{{ProductRef: "A", Quantity: 1}}, time.Now())
		require.NoError(t, err)

		require.ErrorIs(t, pricer.Ready(o), errs.ErrStateConflict)
	})

	t.Run("should reject unconstructed orders", func(t *testing.T) {
		require.ErrorIs(t, pricer.Ready(&order.Order{}), order.ErrOrderIsNotConstructed)
	})
}

func TestQuotePricer_Apply(t *testing.T) {
	pricer := services.NewQuotePricer()

	t.Run("should price every item and the total", func(t *testing.T) {
		o := pendingPricingOrder(t)

		err := pricer.Apply(o, ports.PriceQuote{
			Lines: []ports.PricedLine{
				{ProductRef: "A", UnitPrice: money(t, "10")},
				{ProductRef: "B", UnitPrice: money(t, "20")},
			},
			Total: money(t, "90"),
		})

		require.NoError(t, err)
		assert.Equal(t, order.WaitingClientApproval, o.Status())
		assert.True(t, o.IsFullyPriced())
		assert.Equal(t, "90.00", o.TotalOrderValue().String())
	})

	t.Run("should ignore prices of products outside the order", func(t *testing.T) {
		o := pendingPricingOrder(t)

		err := pricer.Apply(o, ports.PriceQuote{
			Lines: []ports.PricedLine{
				{ProductRef: "A", UnitPrice: money(t, "10")},
				{ProductRef: "B", UnitPrice: money(t, "20")},
				{ProductRef: "Z", UnitPrice: money(t, "1")},
			},
			Total: money(t, "90"),
		})

		require.NoError(t, err)
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should accept amounts with trailing zeros past the cents", func(t *testing.T) {
		o := pendingPricingOrder(t)

		err := pricer.Apply(o, ports.PriceQuote{
			Lines: []ports.PricedLine{
				{ProductRef: "A", UnitPrice: money(t, "10.500")},
				{ProductRef: "B", UnitPrice: money(t, "20")},
			},
			Total: money(t, "92.50"),
		})

		require.NoError(t, err)
		assert.Equal(t, "92.50", o.TotalOrderValue().String())
	})

	testCases := []struct {
		name  string
		quote func(t *testing.T) ports.PriceQuote
		cause error
	}{
		{
			name: "missing item",
			quote: func(t *testing.T) ports.PriceQuote {
				return ports.PriceQuote{
					Lines: []ports.PricedLine{{ProductRef: "A", UnitPrice: money(t, "10")}},
					Total: money(t, "50"),
				}
			},
			cause: services.ErrQuoteIsIncomplete,
		},
		{
			name: "zero unit price",
			quote: func(t *testing.T) ports.PriceQuote {
				return ports.PriceQuote{
					Lines: []ports.PricedLine{
						{ProductRef: "A", UnitPrice: kernel.ZeroMoney()},
						{ProductRef: "B", UnitPrice: money(t, "20")},
					},
					Total: money(t, "40"),
				}
			},
			cause: services.ErrPriceIsNotPositive,
		},
		{
			name: "zero total",
			quote: func(t *testing.T) ports.PriceQuote {
				return ports.PriceQuote{
					Lines: []ports.PricedLine{
						{ProductRef: "A", UnitPrice: money(t, "10")},
						{ProductRef: "B", UnitPrice: money(t, "20")},
					},
					Total: kernel.ZeroMoney(),
				}
			},
			cause: services.ErrPriceIsNotPositive,
		},
		{
			name: "sub-cent unit prices",
			quote: func(t *testing.T) ports.PriceQuote {
				return ports.PriceQuote{
					Lines: []ports.PricedLine{
						{ProductRef: "A", UnitPrice: money(t, "0.004")},
						{ProductRef: "B", UnitPrice: money(t, "0.001")},
					},
					Total: money(t, "0.003"),
				}
			},
			cause: services.ErrPriceIsNotStorable,
		},
		{
			name: "sub-cent total",
			quote: func(t *testing.T) ports.PriceQuote {
				return ports.PriceQuote{
					Lines: []ports.PricedLine{
						{ProductRef: "A", UnitPrice: money(t, "10")},
						{ProductRef: "B", UnitPrice: money(t, "20")},
					},
					Total: money(t, "90.001"),
				}
			},
			cause: services.ErrPriceIsNotStorable,
		},
		{
			name: "oversized total",
			quote: func(t *testing.T) ports.PriceQuote {
				return ports.PriceQuote{
					Lines: []ports.PricedLine{
						{ProductRef: "A", UnitPrice: money(t, "10")},
						{ProductRef: "B", UnitPrice: money(t, "20")},
					},
					Total: money(t, "1000000000000"),
				}
			},
			cause: services.ErrPriceIsNotStorable,
		},
		{
			name: "unset unit price",
			quote: func(_ *testing.T) ports.PriceQuote {
				return ports.PriceQuote{Lines: []ports.PricedLine{{ProductRef: "A"}}}
			},
			cause: services.ErrPriceIsNotPositive,
		},
	}

	for _, tc := range testCases {
		t.Run("should reject a result with "+tc.name, func(t *testing.T) {
			o := pendingPricingOrder(t)

			err := pricer.Apply(o, tc.quote(t))

			require.ErrorIs(t, err, errs.ErrCollaboratorFailure)
			var failure *errs.CollaboratorFailureError
			require.ErrorAs(t, err, &failure)
			require.ErrorIs(t, failure.Cause, tc.cause)
			assert.Equal(t, order.PendingPricing, o.Status())
			assert.True(t, o.TotalOrderValue().IsPending())
			assert.Empty(t, o.DomainEvents())
		})
	}

	t.Run("should not price an order in the wrong status", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "client", []order.QuoteLine{{ProductRef: "A", Quantity: 1}}, time.Now())
		require.NoError(t, err)

		err = pricer.Apply(o, ports.PriceQuote{
			Lines: []ports.PricedLine{{ProductRef: "A", UnitPrice: money(t, "10")}},
			Total: money(t, "10"),
		})

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, order.NewInquiry, o.Status())
	})
}

func pendingPricingOrder(t *testing.T) *order.Order {
	t.Helper()
	a, err := order.NewItem("A", 5, order.PendingPrice())
	require.NoError(t, err)
	b, err := order.NewItem("B", 2, order.PendingPrice())
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), "client-1", order.PendingPricing,
		[]order.Item{a, b}, order.PendingPrice(), time.Now(), 2)
	require.NoError(t, err)
	return o
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}
