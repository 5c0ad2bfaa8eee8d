package http

import (
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/generated/servers"
)

func toQuoteLines(lines []servers.QuoteLine) []order.QuoteLine {
	result := make([]order.QuoteLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, order.QuoteLine{
			ProductRef: kernel.ProductRef(line.ProductRef),
			Quantity:   line.Quantity,
		})
	}
	return result
}

// toOrder renders an order. Pending prices and a pending total are null.
func toOrder(o *order.Order) servers.Order {
	items := o.Items()
	response := servers.Order{
		Id:        o.ID().Bytes(),
		ClientRef: o.ClientRef(),
		Status:    servers.OrderStatus(o.Status().String()),
		Items:     make([]servers.Item, len(items)),
		Total:     amountOf(o.TotalOrderValue()),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
	}

	for i, item := range items {
		response.Items[i] = servers.Item{
			ProductRef: item.ProductRef().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  amountOf(item.UnitPrice()),
		}
		if total, ok := item.LineTotal(); ok {
			s := total.String()
			response.Items[i].LineTotal = &s
		}
	}

	if message := order.StatusMessage(o.Status()); message != "" {
		response.StatusMessage = &message
	}

	steps := order.ProgressOf(o.Status())
	response.Progress = make([]servers.ProgressStep, len(steps))
	for i, step := range steps {
		response.Progress[i] = servers.ProgressStep{
			Label: step.Label,
			State: servers.ProgressStepState(step.State),
		}
	}

	return response
}

func amountOf(p order.Price) *string {
	amount, ok := p.Amount()
	if !ok {
		return nil
	}
	s := amount.String()
	return &s
}
