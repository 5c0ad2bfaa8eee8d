package ports

import (
	"context"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
)

// PricedLine is the unit price the Pricing Service assigned to one product.
type PricedLine struct {
	ProductRef kernel.ProductRef
	UnitPrice  kernel.Money
}

// PriceQuote is an authoritative pricing result. It fully replaces any earlier prices.
type PriceQuote struct {
	Lines []PricedLine
	Total kernel.Money
}

// PricingService is the external collaborator that owns price computation.
// The order core never computes a price itself.
type PricingService interface {
	// Reprice prices every line. Transport failures and malformed answers are reported as
	// errs.CollaboratorFailureError.
	Reprice(ctx context.Context, lines []order.QuoteLine) (PriceQuote, error)
}
