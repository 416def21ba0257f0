package plan

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "plan.schema.json"

//go:embed plan.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func planSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("adding plan schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a JSON document against the embedded plan schema.
func validateSchema(doc []byte) error {
	schema, err := planSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: plan is not valid JSON: %v", domain.ErrInvalidInput, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: plan does not match schema: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
