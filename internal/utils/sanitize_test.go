package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "Hello World",
			expected: "Hello World",
		},
		{
			name:     "tags are stripped",
			input:    "<script>alert('x')</script>Hello",
			expected: "Hello",
		},
		{
			name:     "inline markup stripped but text kept",
			input:    "<b>Bold</b> and <i>italic</i>",
			expected: "Bold and italic",
		},
		{
			name:     "whitespace runs collapse",
			input:    "  too   much\n\nspace  ",
			expected: "too much space",
		},
		{
			name:     "numbers are rendered without exponent",
			input:    float64(42),
			expected: "42",
		},
		{
			name:     "nil becomes empty",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeRichText(t *testing.T) {
	t.Run("keeps permissive formatting markup", func(t *testing.T) {
		out := SanitizeRichText("<p>Hello <strong>there</strong></p>")
		assert.Contains(t, out, "<strong>there</strong>")
	})

	t.Run("drops scripts", func(t *testing.T) {
		out := SanitizeRichText(`<script>alert("x")</script>safe`)
		assert.NotContains(t, out, "script")
		assert.Contains(t, out, "safe")
	})
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "my_key-1", SanitizeKey("My_Key-1"))
	assert.Equal(t, "post", SanitizeKey("  POST!  "))
	assert.Equal(t, "", SanitizeKey("!@#$"))
}

func TestSanitizeMetaKey(t *testing.T) {
	// Meta keys keep their case, unlike identifier keys
	assert.Equal(t, "My_Meta-Key", SanitizeMetaKey("My_Meta-Key"))
	assert.Equal(t, "price", SanitizeMetaKey("price!"))
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "abc", "abc"},
		{"float without trailing zeroes", float64(3.5), "3.5"},
		{"whole float without decimal point", float64(7), "7"},
		{"int", 12, "12"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"nested structure JSON encoded", map[string]any{"a": 1}, `{"a":1}`},
		{"array JSON encoded", []any{"x", "y"}, `["x","y"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stringify(tt.input))
		})
	}
}
