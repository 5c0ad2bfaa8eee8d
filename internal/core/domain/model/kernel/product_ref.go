package kernel

import (
	"strings"

	"quoteflow/internal/pkg/errs"
)

// ProductRef is a non-owning reference to a product owned by the catalog.
// Orders keep only the reference, never a copy of catalog data.
type ProductRef string

// NewProductRef trims and validates a product reference.
func NewProductRef(s string) (ProductRef, error) {
	ref := ProductRef(strings.TrimSpace(s))
	if err := ref.Validate(); err != nil {
		return "", err
	}
	return ref, nil
}

// Validate rejects the empty reference.
func (r ProductRef) Validate() error {
	if r == "" {
		return errs.NewValueIsRequiredError("productRef")
	}
	return nil
}

func (r ProductRef) String() string {
	return string(r)
}
