// Package catalog models the read-only list of products a client may add to a quote.
package catalog

import (
	"errors"
	"strings"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/pkg/errs"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog entry. Orders reference it by ProductRef only and never own it.
type Product struct {
	ref           kernel.ProductRef
	name          string
	unit          string
	active        bool
	isConstructed bool
}

// NewProduct creates a catalog product. Unit defaults to "pcs".
func NewProduct(ref kernel.ProductRef, name, unit string, active bool) (Product, error) {
	p := Product{active: active, isConstructed: true}

	if err := errors.Join(p.setRef(ref), p.setName(name)); err != nil {
		return Product{}, err
	}

	p.unit = strings.TrimSpace(unit)
	if p.unit == "" {
		p.unit = "pcs"
	}

	return p, nil
}

func (p Product) Validate() error {
	if !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p Product) Ref() kernel.ProductRef {
	return p.ref
}

func (p Product) Name() string {
	return p.name
}

func (p Product) Unit() string {
	return p.unit
}

// Active reports whether the product can be added to new quotes.
func (p Product) Active() bool {
	return p.active
}

func (p *Product) setRef(ref kernel.ProductRef) error {
	ref, err := kernel.NewProductRef(string(ref))
	if err != nil {
		return err
	}
	p.ref = ref
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}
