package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"quoteflow/internal/core/application/usecases/commands"
	"quoteflow/internal/core/application/usecases/queries"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateInquiry      commands.CreateInquiryCommandHandler
	ModifyOrder        commands.ModifyOrderCommandHandler
	ConfirmOrder       commands.ConfirmOrderCommandHandler
	ConfirmDelivery    commands.ConfirmDeliveryCommandHandler
	BeginPricing       commands.BeginPricingCommandHandler
	CompletePricing    commands.CompletePricingCommandHandler
	AdvanceFulfillment commands.AdvanceFulfillmentCommandHandler
	ArchiveOrder       commands.ArchiveOrderCommandHandler

	GetOrder   queries.GetOrderQueryHandler
	GetCatalog queries.GetCatalogQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateInquiry handles POST /api/v1/orders - creates an order from a client inquiry.
func (s *Server) CreateInquiry(ctx echo.Context) error {
	var body servers.CreateInquiryJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateInquiryCommand(kernel.NewUUID(), body.ClientRef, toQuoteLines(body.Items))
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CreateInquiry.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		query, err := queries.NewGetOrderQuery(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.GetOrder.Handle(c, query)
	})
}

// ModifyOrder handles PUT /api/v1/orders/{orderId}/items. A repeated Idempotency-Key with
// the same items returns the current order without a second transition.
func (s *Server) ModifyOrder(ctx echo.Context, orderId servers.OrderId, params servers.ModifyOrderParams) error {
	var body servers.ModifyOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	key := ""
	if params.IdempotencyKey != nil {
		key = strings.TrimSpace(*params.IdempotencyKey)
	}

	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewModifyOrderCommand(id, toQuoteLines(body.Items), key)
		if err != nil {
			return nil, err
		}
		return s.handlers.ModifyOrder.Handle(c, cmd)
	})
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewConfirmOrderCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.ConfirmOrder.Handle(c, cmd)
	})
}

// ConfirmDelivery handles POST /api/v1/orders/{orderId}/delivery/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewConfirmDeliveryCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.ConfirmDelivery.Handle(c, cmd)
	})
}

func (s *Server) BeginPricing(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewBeginPricingCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.BeginPricing.Handle(c, cmd)
	})
}

func (s *Server) CompletePricing(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewCompletePricingCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.CompletePricing.Handle(c, cmd)
	})
}

func (s *Server) AdvanceFulfillment(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewAdvanceFulfillmentCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.AdvanceFulfillment.Handle(c, cmd)
	})
}

func (s *Server) ArchiveOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.respond(ctx, orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewArchiveOrderCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.ArchiveOrder.Handle(c, cmd)
	})
}

// GetProducts handles GET /api/v1/products - lists products a client can add to a quote.
func (s *Server) GetProducts(ctx echo.Context) error {
	products, err := s.handlers.GetCatalog.Handle(ctx.Request().Context(), queries.NewGetCatalogQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Product, len(products))
	for i, p := range products {
		response[i] = servers.Product{
			Ref:  p.Ref().String(),
			Name: p.Name(),
			Unit: p.Unit(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// respond runs an operation addressed by order id and renders the resulting order.
func (s *Server) respond(
	ctx echo.Context,
	orderId servers.OrderId,
	operation func(context.Context, kernel.UUID) (*order.Order, error),
) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := operation(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}
