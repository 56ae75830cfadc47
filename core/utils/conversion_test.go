package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsID(t *testing.T) {
	tests := []struct {
		name   string
		val    any
		want   int
		wantOK bool
	}{
		{"Int", 7, 7, true},
		{"Int64", int64(8), 8, true},
		{"Uint32", uint32(9), 9, true},
		{"Integral float", float64(10), 10, true},
		{"Fractional float", 1.5, 0, false},
		{"String", "10", 0, false},
		{"Nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsID(tt.val)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsBool(t *testing.T) {
	b, ok := AsBool(true)
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = AsBool("true")
	assert.False(t, ok)
}
