package orderrepo

import (
	"time"

	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. A NULL total means the total is pending.
type OrderDTO struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ClientRef string              `gorm:"type:varchar(255);not null"`
	Status    int                 `gorm:"type:smallint;not null"`
	Total     decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CreatedAt time.Time           `gorm:"not null"`
	Version   int64               `gorm:"not null"`
	Items     []OrderItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order_items row. Position keeps the item order of the aggregate.
// A NULL unit price means the item is pending pricing.
type OrderItemDTO struct {
	OrderID    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ProductRef string              `gorm:"type:varchar(255);primaryKey"`
	Position   int                 `gorm:"not null"`
	Quantity   int                 `gorm:"not null"`
	UnitPrice  decimal.NullDecimal `gorm:"type:numeric(14,2)"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := itemsFromDomain(orderID, aggregate.Items())

	return OrderDTO{
		ID:        orderID,
		ClientRef: aggregate.ClientRef(),
		Status:    int(aggregate.Status()),
		Total:     priceToColumn(aggregate.TotalOrderValue()),
		CreatedAt: aggregate.CreatedAt(),
		Version:   aggregate.Version(),
		Items:     items,
	}
}

func itemsFromDomain(orderID uuid.UUID, items []order.Item) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, OrderItemDTO{
			OrderID:    orderID,
			ProductRef: item.ProductRef().String(),
			Position:   i,
			Quantity:   item.Quantity(),
			UnitPrice:  priceToColumn(item.UnitPrice()),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := priceFromColumn(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(kernel.ProductRef(itemDTO.ProductRef), itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := priceFromColumn(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.ClientRef, order.Status(dto.Status), items, total, dto.CreatedAt, dto.Version)
}

func priceToColumn(p order.Price) decimal.NullDecimal {
	amount, ok := p.Amount()
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(amount.Decimal())
}

func priceFromColumn(column decimal.NullDecimal) (order.Price, error) {
	if !column.Valid {
		return order.PendingPrice(), nil
	}

	amount, err := kernel.NewMoney(column.Decimal)
	if err != nil {
		return order.Price{}, err
	}
	return order.PricedAt(amount)
}
