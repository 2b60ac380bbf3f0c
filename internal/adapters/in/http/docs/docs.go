// Package docs embeds the OpenAPI document of the HTTP API. It is loaded by
// the request validator and served by the swagger UI.
package docs

import (
	"context"
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiYAML)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, err
	}
	return doc, nil
}

// swaggerDoc serves the document as JSON to the swagger UI.
type swaggerDoc struct {
	once sync.Once
	json string
}

func (d *swaggerDoc) ReadDoc() string {
	d.once.Do(func() {
		doc, err := Load()
		if err != nil {
			d.json = "{}"
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			d.json = "{}"
			return
		}
		d.json = string(raw)
	})
	return d.json
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
