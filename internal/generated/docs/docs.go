// Package docs registers the OpenAPI document with swag so echo-swagger can serve it.
package docs

import (
	"sync"

	"quoteflow/internal/generated/servers"

	"github.com/swaggo/swag"
)

var (
	once        sync.Once
	registerErr error
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "Quoteflow order service",
	Description:      "Order lifecycle and quote negotiation between clients and the sales desk.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// Register renders the OpenAPI document to JSON and registers it. Later calls are no-ops.
func Register() error {
	once.Do(func() {
		swagger, err := servers.GetSwagger()
		if err != nil {
			registerErr = err
			return
		}

		doc, err := swagger.MarshalJSON()
		if err != nil {
			registerErr = err
			return
		}

		SwaggerInfo.SwaggerTemplate = string(doc)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	return registerErr
}
