package order_test

import (
	"testing"

	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allActions = []order.Action{
	order.BeginPricing,
	order.CompletePricing,
	order.ConfirmQuote,
	order.ModifyQuote,
	order.AdvanceFulfillment,
	order.ConfirmDelivery,
	order.Archive,
}

var satisfied = order.Guards{ItemCount: 2, AllItemsPriced: true}

func TestTransition_LegalEdges(t *testing.T) {
	testCases := []struct {
		from   order.Status
		action order.Action
		to     order.Status
	}{
		{order.NewInquiry, order.BeginPricing, order.PendingPricing},
		{order.PendingPricing, order.CompletePricing, order.WaitingClientApproval},
		{order.WaitingClientApproval, order.ConfirmQuote, order.OrderConfirmed},
		{order.WaitingClientApproval, order.ModifyQuote, order.PendingPricing},
		{order.OrderConfirmed, order.AdvanceFulfillment, order.AwaitingPayment},
		{order.AwaitingPayment, order.AdvanceFulfillment, order.PaymentCleared},
		{order.PaymentCleared, order.AdvanceFulfillment, order.InTransit},
		{order.InTransit, order.ConfirmDelivery, order.Delivered},
		{order.Delivered, order.Archive, order.Closed},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"/"+tc.action.String(), func(t *testing.T) {
			next, err := order.Transition(tc.from, tc.action, satisfied)

			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
		})
	}
}

func TestTransition_IsTotal(t *testing.T) {
	legal := 0
	statuses := append([]order.Status{order.Unknown}, order.Statuses()...)

	for _, from := range statuses {
		for _, action := range allActions {
			next, err := order.Transition(from, action, satisfied)
			if err != nil {
				require.ErrorIs(t, err, errs.ErrStateConflict, "%s/%s", from, action)
				assert.Equal(t, order.Unknown, next)
				continue
			}
			legal++
			require.NoError(t, next.Validate())
			assert.NotEqual(t, from, next, "a legal transition never no-ops")
		}
	}

	assert.Equal(t, 9, legal)
}

func TestTransition_NoSkippingFulfillment(t *testing.T) {
	_, err := order.Transition(order.OrderConfirmed, order.ConfirmDelivery, satisfied)
	require.ErrorIs(t, err, errs.ErrStateConflict)

	_, err = order.Transition(order.AwaitingPayment, order.Archive, satisfied)
	require.ErrorIs(t, err, errs.ErrStateConflict)

	_, err = order.Transition(order.InTransit, order.AdvanceFulfillment, satisfied)
	require.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestTransition_Guards(t *testing.T) {
	t.Run("should reject pricing completion with pending items", func(t *testing.T) {
		_, err := order.Transition(order.PendingPricing, order.CompletePricing,
			order.Guards{ItemCount: 2, AllItemsPriced: false})

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Contains(t, err.Error(), order.ErrQuoteIsNotFullyPriced.Error())
	})

	t.Run("should reject confirmation of an unpriced quote", func(t *testing.T) {
		_, err := order.Transition(order.WaitingClientApproval, order.ConfirmQuote,
			order.Guards{ItemCount: 1, AllItemsPriced: false})

		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("should reject confirmation of an empty quote", func(t *testing.T) {
		_, err := order.Transition(order.WaitingClientApproval, order.ConfirmQuote,
			order.Guards{ItemCount: 0, AllItemsPriced: true})

		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("should reject an empty modification as validation error", func(t *testing.T) {
		_, err := order.Transition(order.WaitingClientApproval, order.ModifyQuote, order.Guards{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should check the source status before guards", func(t *testing.T) {
		_, err := order.Transition(order.NewInquiry, order.ModifyQuote, order.Guards{})

		require.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("should ignore pricing for modification", func(t *testing.T) {
		next, err := order.Transition(order.WaitingClientApproval, order.ModifyQuote,
			order.Guards{ItemCount: 1, AllItemsPriced: false})

		require.NoError(t, err)
		assert.Equal(t, order.PendingPricing, next)
	})
}

func TestAlreadyApplied(t *testing.T) {
	assert.True(t, order.AlreadyApplied(order.OrderConfirmed, order.ConfirmQuote))
	assert.True(t, order.AlreadyApplied(order.Delivered, order.ConfirmDelivery))

	assert.False(t, order.AlreadyApplied(order.AwaitingPayment, order.ConfirmQuote))
	assert.False(t, order.AlreadyApplied(order.Closed, order.ConfirmDelivery))
	assert.False(t, order.AlreadyApplied(order.PendingPricing, order.ModifyQuote))
	assert.False(t, order.AlreadyApplied(order.Closed, order.Archive))
}
