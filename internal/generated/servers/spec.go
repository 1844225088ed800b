package servers

import (
	"fmt"

	"fitcourse/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// GetSwagger parses the contract the handlers above are bound to.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return doc, nil
}
