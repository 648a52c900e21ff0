package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/brandish-progression/internal/validation"
)

//go:embed data
var dataFS embed.FS

var schemaValidator = validation.NewSchemaValidator(dataFS)

// Load reads a YAML or JSON catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}
	c, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog shipped with the binary
func Default() (*Catalog, error) {
	data, err := dataFS.ReadFile(DefaultCatalogPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses, schema-checks, struct-checks and reference-checks a catalog document.
// JSON is accepted as well since it is a subset of YAML.
func LoadBytes(data []byte) (*Catalog, error) {
	asJSON, err := yamlToJSON(data)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}
	if err := schemaValidator.ValidateBytes(asJSON, SchemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, err)
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf(ErrMsgStructFailed, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return New(doc)
}

// yamlToJSON re-encodes a YAML document as JSON for schema validation
func yamlToJSON(data []byte) ([]byte, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(stringKeys(generic))
}

// stringKeys converts YAML maps with non-string keys (e.g. tier numbers) into JSON objects
func stringKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = stringKeys(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = stringKeys(val)
		}
		return out
	default:
		return v
	}
}
