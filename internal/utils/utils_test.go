package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int64
		expectErr bool
	}{
		{name: "Valid number", input: "123", expected: 123},
		{name: "Surrounding spaces", input: " 7 ", expected: 7},
		{name: "Zero", input: "0", expectErr: true},
		{name: "Negative number", input: "-1", expectErr: true},
		{name: "Non-numeric string", input: "abc", expectErr: true},
		{name: "Empty string", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseID(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Simple", input: "Electronics", expected: "electronics"},
		{name: "With Special Chars", input: "Home & Living!", expected: "home-living"},
		{name: "Multiple Spaces", input: "  Toys   Games ", expected: "toys-games"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestPtrHelpers(t *testing.T) {
	t.Run("StrPtr", func(t *testing.T) {
		ptr := StrPtr("test string")
		assert.NotNil(t, ptr)
		assert.Equal(t, "test string", *ptr)
	})

	t.Run("PtrString", func(t *testing.T) {
		assert.Equal(t, "", PtrString(nil))
		assert.Equal(t, "x", PtrString(StrPtr("x")))
	})

	t.Run("NilIfEmpty", func(t *testing.T) {
		assert.Nil(t, NilIfEmpty(""))
		assert.Nil(t, NilIfEmpty("   "))
		assert.Equal(t, "Black - M", *NilIfEmpty("Black - M"))
	})
}
