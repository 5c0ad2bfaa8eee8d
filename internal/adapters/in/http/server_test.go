package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpin "quoteflow/internal/adapters/in/http"
	"quoteflow/internal/adapters/out/memory"
	"quoteflow/internal/core/application/usecases/commands"
	"quoteflow/internal/core/application/usecases/queries"
	"quoteflow/internal/core/domain/model/catalog"
	"quoteflow/internal/core/domain/model/kernel"
	"quoteflow/internal/core/domain/model/order"
	"quoteflow/internal/core/ports"
	"quoteflow/internal/generated/servers"
	"quoteflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type orderUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.factory.Create() }

type modifyOrderUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f modifyOrderUoWFactory) Create() commands.ModifyOrderUoW { return f.factory.Create() }

// pricingStub prices every product at the same unit price unless failure is set.
type pricingStub struct {
	unitPrice string
	failure   error
}

func (p *pricingStub) Reprice(_ context.Context, lines []order.QuoteLine) (ports.PriceQuote, error) {
	if p.failure != nil {
		return ports.PriceQuote{}, p.failure
	}

	unit, err := kernel.MoneyFromString(p.unitPrice)
	if err != nil {
		return ports.PriceQuote{}, err
	}
	quote := ports.PriceQuote{Total: kernel.ZeroMoney()}
	for _, line := range lines {
		quote.Lines = append(quote.Lines, ports.PricedLine{ProductRef: line.ProductRef, UnitPrice: unit})
		quote.Total = quote.Total.Add(unit.Mul(line.Quantity))
	}
	return quote, nil
}

// ServerTestSuite drives the HTTP interface end to end against the in-memory adapters.
type ServerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	pricing *pricingStub
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	products := make([]catalog.Product, 0, 3)
	for _, p := range []struct {
		ref    string
		active bool
	}{{"A", true}, {"B", true}, {"C", true}, {"D", false}} {
		product, err := catalog.NewProduct(kernel.ProductRef(p.ref), "Product "+p.ref, "pcs", p.active)
		suite.Require().NoError(err)
		products = append(products, product)
	}

	store := memory.NewStore("orders", products...)
	uows := memory.NewUnitOfWorkFactory(store)
	suite.pricing = &pricingStub{unitPrice: "10"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(httpin.Handlers{
		CreateInquiry:      commands.NewCreateInquiryCommandHandler(orderUoWFactory{uows}),
		ModifyOrder:        commands.NewModifyOrderCommandHandler(modifyOrderUoWFactory{uows}, store),
		ConfirmOrder:       commands.NewConfirmOrderCommandHandler(orderUoWFactory{uows}),
		ConfirmDelivery:    commands.NewConfirmDeliveryCommandHandler(orderUoWFactory{uows}),
		BeginPricing:       commands.NewBeginPricingCommandHandler(orderUoWFactory{uows}),
		CompletePricing:    commands.NewCompletePricingCommandHandler(orderUoWFactory{uows}, suite.pricing),
		AdvanceFulfillment: commands.NewAdvanceFulfillmentCommandHandler(orderUoWFactory{uows}),
		ArchiveOrder:       commands.NewArchiveOrderCommandHandler(orderUoWFactory{uows}),
		GetOrder:           queries.NewGetOrderQueryHandler(uows.Create().OrderRepository()),
		GetCatalog:         queries.NewGetCatalogQueryHandler(store),
	}, logger)

	e, err := httpin.NewRouter(server, logger, prometheus.NewRegistry())
	suite.Require().NoError(err)
	suite.echo = e
}

// O1: inquiry, pricing, confirmation and fulfillment through to archive.
func (suite *ServerTestSuite) TestLifecycle() {
	created := suite.createInquiry()
	suite.Equal(servers.NEWINQUIRY, created.Status)
	suite.Nil(created.Total)
	suite.Nil(created.Items[0].UnitPrice)
	suite.Equal(int64(1), created.Version)
	suite.Require().NotNil(created.StatusMessage)
	suite.Equal("We have received your request and are calculating the best prices.", *created.StatusMessage)

	id := created.Id.String()
	suite.Equal(servers.PENDINGPRICING, suite.post(id, "pricing/begin").Status)

	priced := suite.post(id, "pricing/complete")
	suite.Equal(servers.WAITINGCLIENTAPPROVAL, priced.Status)
	suite.Require().NotNil(priced.Total)
	suite.Equal("70.00", *priced.Total)
	suite.Equal("10.00", *priced.Items[0].UnitPrice)
	suite.Equal("50.00", *priced.Items[0].LineTotal)
	suite.Equal(servers.Current, priced.Progress[2].State)

	confirmed := suite.post(id, "confirm")
	suite.Equal(servers.ORDERCONFIRMED, confirmed.Status)

	again := suite.post(id, "confirm")
	suite.Equal(servers.ORDERCONFIRMED, again.Status)
	suite.Equal(confirmed.Version, again.Version, "a repeated confirmation changes nothing")

	for _, want := range []servers.OrderStatus{servers.AWAITINGPAYMENT, servers.PAYMENTCLEARED, servers.INTRANSIT} {
		suite.Equal(want, suite.post(id, "fulfillment/advance").Status)
	}
	suite.Equal(servers.DELIVERED, suite.post(id, "delivery/confirm").Status)
	suite.Equal(servers.DELIVERED, suite.post(id, "delivery/confirm").Status)

	closed := suite.post(id, "archive")
	suite.Equal(servers.CLOSED, closed.Status)
	suite.Nil(closed.StatusMessage)
	for _, step := range closed.Progress {
		suite.Equal(servers.Completed, step.State)
	}

	var fetched servers.Order
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/orders/"+id, "", nil, &fetched))
	suite.Equal(closed, fetched)
}

// O2: the client edits a priced quote, which goes back to pricing with every price pending.
func (suite *ServerTestSuite) TestModifyOrder() {
	id := suite.pricedOrder()

	var modified servers.Order
	status := suite.do(http.MethodPut, "/api/v1/orders/"+id+"/items",
		`{"items":[{"productRef":"A","quantity":3},{"productRef":"B","quantity":0},{"productRef":"C","quantity":1}]}`,
		map[string]string{"Idempotency-Key": "edit-1"}, &modified)

	suite.Require().Equal(http.StatusOK, status)
	suite.Equal(servers.PENDINGPRICING, modified.Status)
	suite.Nil(modified.Total)
	suite.Require().Len(modified.Items, 2)
	for _, item := range modified.Items {
		suite.Nil(item.UnitPrice)
		suite.Nil(item.LineTotal)
	}

	var replayed servers.Order
	status = suite.do(http.MethodPut, "/api/v1/orders/"+id+"/items",
		`{"items":[{"productRef":"C","quantity":1},{"productRef":"A","quantity":3}]}`,
		map[string]string{"Idempotency-Key": "edit-1"}, &replayed)
	suite.Equal(http.StatusOK, status)
	suite.Equal(modified.Version, replayed.Version, "a replayed request is not applied twice")

	var failure servers.Error
	status = suite.do(http.MethodPut, "/api/v1/orders/"+id+"/items",
		`{"items":[{"productRef":"A","quantity":4}]}`,
		map[string]string{"Idempotency-Key": "edit-1"}, &failure)
	suite.Equal(http.StatusBadRequest, status)
	suite.Equal(http.StatusBadRequest, failure.Code)
}

func (suite *ServerTestSuite) TestModifyOrder_Rejections() {
	id := suite.pricedOrder()

	tests := []struct {
		name string
		body string
	}{
		{"unknown product", `{"items":[{"productRef":"Z","quantity":1}]}`},
		{"inactive product", `{"items":[{"productRef":"D","quantity":1}]}`},
		{"every line removed", `{"items":[{"productRef":"A","quantity":0},{"productRef":"B","quantity":0}]}`},
		{"only negative quantities", `{"items":[{"productRef":"A","quantity":-1}]}`},
		{"quantity above the limit", `{"items":[{"productRef":"A","quantity":3000000000}]}`},
		{"missing items", `{}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			var failure servers.Error
			status := suite.do(http.MethodPut, "/api/v1/orders/"+id+"/items", tt.body, nil, &failure)

			suite.Equal(http.StatusBadRequest, status)
			suite.NotEmpty(failure.Message)
		})
	}

	var unchanged servers.Order
	suite.do(http.MethodGet, "/api/v1/orders/"+id, "", nil, &unchanged)
	suite.Equal(servers.WAITINGCLIENTAPPROVAL, unchanged.Status)
}

func (suite *ServerTestSuite) TestModifyOrder_DropsNegativeQuantities() {
	id := suite.pricedOrder()

	var modified servers.Order
	status := suite.do(http.MethodPut, "/api/v1/orders/"+id+"/items",
		`{"items":[{"productRef":"A","quantity":3},{"productRef":"B","quantity":-2}]}`, nil, &modified)

	suite.Require().Equal(http.StatusOK, status)
	suite.Equal(servers.PENDINGPRICING, modified.Status)
	suite.Require().Len(modified.Items, 1)
	suite.Equal("A", modified.Items[0].ProductRef)
	suite.Equal(3, modified.Items[0].Quantity)
}

// O3: an illegal transition is rejected and the order is left as it was.
func (suite *ServerTestSuite) TestIllegalTransition() {
	created := suite.createInquiry()
	id := created.Id.String()

	var failure servers.Error
	status := suite.do(http.MethodPost, "/api/v1/orders/"+id+"/delivery/confirm", "", nil, &failure)

	suite.Equal(http.StatusBadRequest, status)
	suite.Contains(failure.Message, "NEW_INQUIRY")

	var fetched servers.Order
	suite.do(http.MethodGet, "/api/v1/orders/"+id, "", nil, &fetched)
	suite.Equal(created, fetched)
}

func (suite *ServerTestSuite) TestCompletePricing_ServiceFailure() {
	id := suite.createInquiry().Id.String()
	suite.post(id, "pricing/begin")
	suite.pricing.failure = errs.NewCollaboratorFailureErrorWithCause("pricing service", errors.New("timeout"))

	var failure servers.Error
	status := suite.do(http.MethodPost, "/api/v1/orders/"+id+"/pricing/complete", "", nil, &failure)

	suite.Equal(http.StatusBadGateway, status)
	suite.Equal(http.StatusBadGateway, failure.Code)
}

func (suite *ServerTestSuite) TestGetOrder_Errors() {
	var failure servers.Error

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "", nil, &failure))
	suite.Equal(http.StatusNotFound, failure.Code)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "", nil, &failure))
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/orders/00000000-0000-0000-0000-000000000000", "", nil, &failure))
}

func (suite *ServerTestSuite) TestCreateInquiry_Invalid() {
	tests := []struct {
		name string
		body string
	}{
		{"missing client", `{"items":[{"productRef":"A","quantity":1}]}`},
		{"no items", `{"clientRef":"c","items":[]}`},
		{"zero quantity", `{"clientRef":"c","items":[{"productRef":"A","quantity":0}]}`},
		{"negative quantity", `{"clientRef":"c","items":[{"productRef":"A","quantity":-1}]}`},
		{"quantity above the limit", `{"clientRef":"c","items":[{"productRef":"A","quantity":3000000000}]}`},
		{"duplicate product", `{"clientRef":"c","items":[{"productRef":"A","quantity":1},{"productRef":"A","quantity":2}]}`},
		{"malformed", `{"clientRef":`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			var failure servers.Error
			suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/v1/orders", tt.body, nil, &failure))
		})
	}
}

func (suite *ServerTestSuite) TestGetProducts() {
	var products []servers.Product

	suite.Require().Equal(http.StatusOK, suite.do(http.MethodGet, "/api/v1/products", "", nil, &products))

	suite.Equal([]servers.Product{
		{Ref: "A", Name: "Product A", Unit: "pcs"},
		{Ref: "B", Name: "Product B", Unit: "pcs"},
		{Ref: "C", Name: "Product C", Unit: "pcs"},
	}, products)
}

func (suite *ServerTestSuite) TestOperationalEndpoints() {
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/health", "", nil, nil))
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/swagger/doc.json", "", nil, nil))

	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), `quoteflow_http_requests_total{method="GET",route="/health",status="200"} 1`)

	var failure servers.Error
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/nowhere", "", nil, &failure))
	suite.Equal(http.StatusNotFound, failure.Code)
}

func (suite *ServerTestSuite) createInquiry() servers.Order {
	var created servers.Order
	status := suite.do(http.MethodPost, "/api/v1/orders",
		`{"clientRef":"client-7","items":[{"productRef":"A","quantity":5},{"productRef":"B","quantity":2}]}`, nil, &created)
	suite.Require().Equal(http.StatusCreated, status)
	return created
}

func (suite *ServerTestSuite) pricedOrder() string {
	id := suite.createInquiry().Id.String()
	suite.post(id, "pricing/begin")
	suite.Require().Equal(servers.WAITINGCLIENTAPPROVAL, suite.post(id, "pricing/complete").Status)
	return id
}

func (suite *ServerTestSuite) post(id, action string) servers.Order {
	var o servers.Order
	status := suite.do(http.MethodPost, "/api/v1/orders/"+id+"/"+action, "", nil, &o)
	suite.Require().Equal(http.StatusOK, status, action)
	return o
}

func (suite *ServerTestSuite) do(method, target, body string, headers map[string]string, out any) int {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)

	if out != nil {
		suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}
