package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// contractDoc hands the OpenAPI contract to the swagger UI as doc.json.
type contractDoc struct {
	json string
}

func (d contractDoc) ReadDoc() string {
	return d.json
}

// swag keeps a process-wide registry that panics on a second Register.
var registerContract sync.Once

// registerDocs serves the contract and the swagger UI under /swagger.
func registerDocs(e *echo.Echo, doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerContract.Do(func() {
		swag.Register(swag.Name, contractDoc{json: string(raw)})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
