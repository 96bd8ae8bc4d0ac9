package servers

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiSpec []byte

// RawSpec returns the OpenAPI document the server was generated from.
func RawSpec() []byte {
	return openapiSpec
}

// GetSwagger returns the parsed OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(openapiSpec)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
