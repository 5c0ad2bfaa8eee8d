package queries

import (
	"context"

	"quoteflow/internal/core/domain/model/catalog"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/pkg/errs"
)

// GetCatalogQueryHandler lists active catalog products.
type GetCatalogQueryHandler struct {
	catalog ports.ProductCatalog
}

func NewGetCatalogQueryHandler(catalog ports.ProductCatalog) GetCatalogQueryHandler {
	return GetCatalogQueryHandler{catalog: catalog}
}

// Handle returns active products in catalog order. A failing catalog is reported as
// errs.CollaboratorFailureError.
func (h GetCatalogQueryHandler) Handle(ctx context.Context, query GetCatalogQuery) ([]catalog.Product, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products, err := h.catalog.List(ctx)
	if err != nil {
		return nil, errs.NewCollaboratorFailureErrorWithCause("catalog", err)
	}

	active := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active, nil
}
