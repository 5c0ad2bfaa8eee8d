// Package catalogrepo reads the product catalog from the products table.
package catalogrepo

import (
	"context"

	"quoteflow/internal/core/domain/model/catalog"
	"quoteflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ProductDTO struct {
	Ref    string `gorm:"type:varchar(255);primaryKey"`
	Name   string `gorm:"type:varchar(255);not null"`
	Unit   string `gorm:"type:varchar(32);not null"`
	Active bool   `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// List returns every product, active or not, ordered by reference.
func (c *GormProductCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Order("ref").Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := catalog.NewProduct(kernel.ProductRef(dto.Ref), dto.Name, dto.Unit, dto.Active)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}
