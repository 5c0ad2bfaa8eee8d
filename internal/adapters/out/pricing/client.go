// Package pricing calls the external Pricing Service over HTTP.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	collaborator = "pricing service"

	// defaultRetryAfter is reported when a 429 carries no usable Retry-After header.
	defaultRetryAfter = 60 * time.Second
)

var (
	ErrUnexpectedStatus = errors.New("unexpected pricing service status")
	ErrTooManyRequests  = errors.New("pricing service is rate limiting requests")
)

// RetryAfterError reports how long the Pricing Service asked callers to back off.
type RetryAfterError struct {
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrTooManyRequests, e.After)
}

func (e *RetryAfterError) Unwrap() error {
	return ErrTooManyRequests
}

// Client implements ports.PricingService.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a client for the service at baseURL. Every request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type repriceLine struct {
	ProductRef string `json:"productRef"`
	Quantity   int    `json:"quantity"`
}

type repriceRequest struct {
	Items []repriceLine `json:"items"`
}

type pricedLine struct {
	ProductRef string          `json:"productRef"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type repriceResponse struct {
	Items []pricedLine    `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Reprice sends the lines to POST {base}/api/v1/reprice.
//
// 200 - every line priced.
// 429 - rate limited, the Retry-After header is honoured.
// anything else - the service failed.
func (c *Client) Reprice(ctx context.Context, lines []order.QuoteLine) (ports.PriceQuote, error) {
	quote, err := c.reprice(ctx, lines)
	if err != nil {
		return ports.PriceQuote{}, errs.NewCollaboratorFailureErrorWithCause(collaborator, err)
	}
	return quote, nil
}

func (c *Client) reprice(ctx context.Context, lines []order.QuoteLine) (ports.PriceQuote, error) {
	endpoint, err := url.JoinPath(c.baseURL, "api", "v1", "reprice")
	if err != nil {
		return ports.PriceQuote{}, err
	}

	body := repriceRequest{Items: make([]repriceLine, 0, len(lines))}
	for _, line := range lines {
		body.Items = append(body.Items, repriceLine{ProductRef: line.ProductRef.String(), Quantity: line.Quantity})
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return ports.PriceQuote{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.PriceQuote{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return ports.PriceQuote{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var decoded repriceResponse
		if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return ports.PriceQuote{}, err
		}
		return toQuote(decoded)
	case http.StatusTooManyRequests:
		return ports.PriceQuote{}, &RetryAfterError{After: retryAfter(resp.Header.Get("Retry-After"))}
	default:
		return ports.PriceQuote{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

func toQuote(resp repriceResponse) (ports.PriceQuote, error) {
	quote := ports.PriceQuote{Lines: make([]ports.PricedLine, 0, len(resp.Items))}
	for _, item := range resp.Items {
		ref, err := kernel.NewProductRef(item.ProductRef)
		if err != nil {
			return ports.PriceQuote{}, err
		}
		price, err := kernel.NewMoney(item.UnitPrice)
		if err != nil {
			return ports.PriceQuote{}, err
		}
		quote.Lines = append(quote.Lines, ports.PricedLine{ProductRef: ref, UnitPrice: price})
	}

	total, err := kernel.NewMoney(resp.Total)
	if err != nil {
		return ports.PriceQuote{}, err
	}
	quote.Total = total
	return quote, nil
}

func retryAfter(header string) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
