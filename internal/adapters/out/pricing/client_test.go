package pricing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quoteflow/internal/adapters/out/pricing"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lines = []order.QuoteLine{
	{ProductRef: "A", Quantity: 5},
	{ProductRef: "B", Quantity: 2},
}

func TestClient_Reprice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/reprice", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string][]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []map[string]any{
			{"productRef": "A", "quantity": float64(5)},
			{"productRef": "B", "quantity": float64(2)},
		}, body["items"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"productRef":"A","unitPrice":"10.50"},{"productRef":"B","unitPrice":20}],"total":"92.50"}`))
	}))
	defer server.Close()

	quote, err := pricing.NewClient(server.URL, time.Second).Reprice(context.Background(), lines)

	require.NoError(t, err)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, kernel.ProductRef("A"), quote.Lines[0].ProductRef)
	assert.True(t, quote.Lines[0].UnitPrice.IsEqual(money(t, "10.5")))
	assert.True(t, quote.Lines[1].UnitPrice.IsEqual(money(t, "20")))
	assert.True(t, quote.Total.IsEqual(money(t, "92.5")))
}

func TestClient_RepriceFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "7")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var failure *errs.CollaboratorFailureError
				require.ErrorAs(t, err, &failure)
				var retry *pricing.RetryAfterError
				require.ErrorAs(t, failure.Cause, &retry)
				assert.Equal(t, 7*time.Second, retry.After)
			},
		},
		{
			name: "rate limited without header",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var failure *errs.CollaboratorFailureError
				require.ErrorAs(t, err, &failure)
				var retry *pricing.RetryAfterError
				require.ErrorAs(t, failure.Cause, &retry)
				assert.Equal(t, time.Minute, retry.After)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				var failure *errs.CollaboratorFailureError
				require.ErrorAs(t, err, &failure)
				assert.ErrorIs(t, failure.Cause, pricing.ErrUnexpectedStatus)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"items":`))
			},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errs.ErrCollaboratorFailure)
			},
		},
		{
			name: "negative price",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"items":[{"productRef":"A","unitPrice":"-1"}],"total":"0"}`))
			},
			check: func(t *testing.T, err error) {
				var failure *errs.CollaboratorFailureError
				require.ErrorAs(t, err, &failure)
				assert.ErrorIs(t, failure.Cause, errs.ErrValueIsInvalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := pricing.NewClient(server.URL, time.Second).Reprice(context.Background(), lines)

			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_RepriceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := pricing.NewClient(url, 100*time.Millisecond).Reprice(context.Background(), lines)

	require.ErrorIs(t, err, errs.ErrCollaboratorFailure)
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}
