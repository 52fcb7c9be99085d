package server

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/videogame.schema.json
var videoGameSchema []byte

const maxSchemaErrors = 5

// payloadValidator checks request bodies against the embedded schema.
type payloadValidator struct {
	schema *gojsonschema.Schema
}

func newPayloadValidator() (*payloadValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(videoGameSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile video game schema: %w", err)
	}

	return &payloadValidator{schema: schema}, nil
}

// Validate returns nil when body is a valid video game payload, otherwise an
// error listing the first few violations.
func (v *payloadValidator) Validate(body []byte) error {
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if res.Valid() {
		return nil
	}

	var msgs []string

	for i, e := range res.Errors() {
		if i >= maxSchemaErrors {
			break
		}

		msgs = append(msgs, e.String())
	}

	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
