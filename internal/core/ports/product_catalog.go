package ports

import (
	"context"

	"quoteflow/internal/core/domain/model/catalog"
)

// ProductCatalog is the read-only source of products a client may add to a quote.
type ProductCatalog interface {
	List(ctx context.Context) ([]catalog.Product, error)
}
