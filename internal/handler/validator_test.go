package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Identifier(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"catalog id", "iron_ore", false},
		{"uuid", "0b6c2f3e-4f0a-4a51-9b1e-2f4c8a7d9e10", false},
		{"snowflake", "123456789012345678", false},
		{"empty", "", true},
		{"space", "iron ore", true},
		{"path traversal", "../etc", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().ValidateVar(tt.value, "required,max=64,identifier")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(ProgressRequest{Type: "bad type", Amount: -5})

	fields := FormatValidationError(err)

	assert.Equal(t, "Must contain only letters, digits, '_' or '-'", fields["type"])
	assert.Equal(t, "Must be at least 0", fields["amount"])
	assert.Nil(t, FormatValidationError(nil))
}
