package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/config_schema.json
var configSchemaJSON string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the compiled config schema. Compilation happens once; the
// embedded schema is trusted so an error here is a programming bug.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var schemaDoc any
		if err := json.Unmarshal([]byte(configSchemaJSON), &schemaDoc); err != nil {
			schemaErr = fmt.Errorf("failed to parse embedded config schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config_schema.json", schemaDoc); err != nil {
			schemaErr = fmt.Errorf("failed to add config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("config_schema.json")
	})
	return compiledSchema, schemaErr
}

// validateSchema checks raw config bytes against the embedded schema before
// they are decoded into Config, so unknown keys and wrong types are reported
// with their schema location instead of being dropped silently.
func validateSchema(path string, data []byte) error {
	schema, err := Schema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config %s does not match the expected schema: %w", path, formatSchemaError(err))
	}
	return nil
}

// formatSchemaError flattens a jsonschema validation error into single-line
// messages that read well on a terminal.
func formatSchemaError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var lines []string
	for _, cause := range flattenCauses(validationErr) {
		lines = append(lines, cause.Error())
	}
	if len(lines) == 0 {
		return err
	}
	return fmt.Errorf("%s", strings.Join(lines, "; "))
}

func flattenCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, flattenCauses(cause)...)
	}
	return leaves
}
