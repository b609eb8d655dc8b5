package utils

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		valid bool
	}{
		{"simple", "work", true},
		{"cjk", "想法", true},
		{"inner spaces", "to read", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"at limit", strings.Repeat("a", MaxTagLength), true},
		{"over limit", strings.Repeat("a", MaxTagLength+1), false},
		{"multibyte at limit", strings.Repeat("记", MaxTagLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateTag(tt.tag))
		})
	}
}

func TestTagRuleOnSlices(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidators(v))

	type request struct {
		Tags []string `validate:"dive,tag"`
	}

	assert.NoError(t, v.Struct(request{Tags: []string{"work", "idea"}}))
	assert.NoError(t, v.Struct(request{}))
	assert.Error(t, v.Struct(request{Tags: []string{"work", " "}}))
}
