// Package servers provides primitives to interact with the openapi HTTP API.
//
// The types, ServerInterface and its wrapper follow the oapi-codegen echo server layout for
// api/openapi.yml.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"quoteflow/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	AWAITINGPAYMENT       OrderStatus = "AWAITING_PAYMENT"
	CLOSED                OrderStatus = "CLOSED"
	DELIVERED             OrderStatus = "DELIVERED"
	INTRANSIT             OrderStatus = "IN_TRANSIT"
	NEWINQUIRY            OrderStatus = "NEW_INQUIRY"
	ORDERCONFIRMED        OrderStatus = "ORDER_CONFIRMED"
	PAYMENTCLEARED        OrderStatus = "PAYMENT_CLEARED"
	PENDINGPRICING        OrderStatus = "PENDING_PRICING"
	WAITINGCLIENTAPPROVAL OrderStatus = "WAITING_CLIENT_APPROVAL"
)

// Defines values for ProgressStepState.
const (
	Completed ProgressStepState = "completed"
	Current   ProgressStepState = "current"
	Upcoming  ProgressStepState = "upcoming"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Item defines model for Item.
type Item struct {
	LineTotal  *string `json:"lineTotal"`
	ProductRef string  `json:"productRef"`
	Quantity   int     `json:"quantity"`

	// UnitPrice Decimal amount, null while pricing is pending
	UnitPrice *string `json:"unitPrice"`
}

// ModifyItems defines model for ModifyItems.
type ModifyItems struct {
	Items []QuoteLine `json:"items"`
}

// NewInquiry defines model for NewInquiry.
type NewInquiry struct {
	ClientRef string      `json:"clientRef"`
	Items     []QuoteLine `json:"items"`
}

// Order defines model for Order.
type Order struct {
	ClientRef string             `json:"clientRef"`
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
	Items     []Item             `json:"items"`
	Progress  []ProgressStep     `json:"progress"`
	Status    OrderStatus        `json:"status"`

	// StatusMessage Client-facing note on the current status, absent when there is none
	StatusMessage *string `json:"statusMessage,omitempty"`

	// Total Decimal amount, null while any item is pending pricing
	Total   *string `json:"total"`
	Version int64   `json:"version"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

// Product defines model for Product.
type Product struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
	Unit string `json:"unit"`
}

// ProgressStep defines model for ProgressStep.
type ProgressStep struct {
	Label string            `json:"label"`
	State ProgressStepState `json:"state"`
}

// ProgressStepState defines model for ProgressStep.State.
type ProgressStepState string

// QuoteLine defines model for QuoteLine.
type QuoteLine struct {
	ProductRef string `json:"productRef"`

	// Quantity Lines with a quantity of zero or less are dropped from a modification
	Quantity int `json:"quantity"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// ModifyOrderParams defines parameters for ModifyOrder.
type ModifyOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// CreateInquiryJSONRequestBody defines body for CreateInquiry for application/json ContentType.
type CreateInquiryJSONRequestBody = NewInquiry

// ModifyOrderJSONRequestBody defines body for ModifyOrder for application/json ContentType.
type ModifyOrderJSONRequestBody = ModifyItems

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create an order from a client inquiry
	// (POST /api/v1/orders)
	CreateInquiry(ctx echo.Context) error
	// Get an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Accept the priced quote
	// (POST /api/v1/orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId OrderId) error
	// Modify the quote and send it back to pricing
	// (PUT /api/v1/orders/{orderId}/items)
	ModifyOrder(ctx echo.Context, orderId OrderId, params ModifyOrderParams) error
	// Confirm receipt of the goods
	// (POST /api/v1/orders/{orderId}/delivery/confirm)
	ConfirmDelivery(ctx echo.Context, orderId OrderId) error
	// Hand a new inquiry over to pricing
	// (POST /api/v1/orders/{orderId}/pricing/begin)
	BeginPricing(ctx echo.Context, orderId OrderId) error
	// Price the order through the Pricing Service
	// (POST /api/v1/orders/{orderId}/pricing/complete)
	CompletePricing(ctx echo.Context, orderId OrderId) error
	// Move a confirmed order one fulfillment step forward
	// (POST /api/v1/orders/{orderId}/fulfillment/advance)
	AdvanceFulfillment(ctx echo.Context, orderId OrderId) error
	// Close a delivered order
	// (POST /api/v1/orders/{orderId}/archive)
	ArchiveOrder(ctx echo.Context, orderId OrderId) error
	// List products that can be added to a quote
	// (GET /api/v1/products)
	GetProducts(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateInquiry converts echo context to params.
func (w *ServerInterfaceWrapper) CreateInquiry(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateInquiry(ctx)
	return err
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, orderId)
	return err
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ConfirmOrder(ctx, orderId)
	return err
}

// ModifyOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ModifyOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params ModifyOrderParams

	headers := ctx.Request().Header
	// ------------- Optional header parameter "Idempotency-Key" -------------
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var IdempotencyKey string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &IdempotencyKey, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}

		params.IdempotencyKey = &IdempotencyKey
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ModifyOrder(ctx, orderId, params)
	return err
}

// ConfirmDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmDelivery(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ConfirmDelivery(ctx, orderId)
	return err
}

// BeginPricing converts echo context to params.
func (w *ServerInterfaceWrapper) BeginPricing(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.BeginPricing(ctx, orderId)
	return err
}

// CompletePricing converts echo context to params.
func (w *ServerInterfaceWrapper) CompletePricing(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CompletePricing(ctx, orderId)
	return err
}

// AdvanceFulfillment converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceFulfillment(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.AdvanceFulfillment(ctx, orderId)
	return err
}

// ArchiveOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ArchiveOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ArchiveOrder(ctx, orderId)
	return err
}

// GetProducts converts echo context to params.
func (w *ServerInterfaceWrapper) GetProducts(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetProducts(ctx)
	return err
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group to
// register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so
// that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateInquiry)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/confirm", wrapper.ConfirmOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/items", wrapper.ModifyOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/delivery/confirm", wrapper.ConfirmDelivery)
	router.POST(baseURL+"/api/v1/orders/:orderId/pricing/begin", wrapper.BeginPricing)
	router.POST(baseURL+"/api/v1/orders/:orderId/pricing/complete", wrapper.CompletePricing)
	router.POST(baseURL+"/api/v1/orders/:orderId/fulfillment/advance", wrapper.AdvanceFulfillment)
	router.POST(baseURL+"/api/v1/orders/:orderId/archive", wrapper.ArchiveOrder)
	router.GET(baseURL+"/api/v1/products", wrapper.GetProducts)
}

// GetSwagger returns the OpenAPI document of the API.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
