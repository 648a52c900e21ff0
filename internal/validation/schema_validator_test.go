package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/test.schema.json": &fstest.MapFile{Data: []byte(testSchema)},
	}
	v := NewSchemaValidator(fsys)

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "John", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Jane"}`},
		{name: "missing required field", data: `{"age": 25}`, wantError: true, errorMsg: "required"},
		{name: "wrong type for field", data: `{"name": "John", "age": "thirty"}`, wantError: true, errorMsg: "/age"},
		{name: "negative age", data: `{"name": "John", "age": -1}`, wantError: true, errorMsg: "minimum"},
		{name: "invalid JSON", data: `{"name": `, wantError: true, errorMsg: "failed to parse JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "schemas/test.schema.json")
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := NewSchemaValidator(fstest.MapFS{})

	err := v.ValidateBytes([]byte(`{}`), "schemas/nope.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_CachesCompiledSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"s.json": &fstest.MapFile{Data: []byte(testSchema)},
	}
	v := NewSchemaValidator(fsys).(*validator)

	require.NoError(t, v.ValidateBytes([]byte(`{"name": "a"}`), "s.json"))
	require.NoError(t, v.ValidateBytes([]byte(`{"name": "b"}`), "s.json"))
	assert.Len(t, v.schemas, 1)
}
