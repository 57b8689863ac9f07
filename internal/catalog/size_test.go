package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"12.5", 12.5},
		{" 7 ", 7},
		{"1,234.5", 1234.5},
		{"-3.25", -3.25},
		{"1e3", 1000},
		{"", 0},
		{"n/a", 0},
		{"12,5ha", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSize(tt.raw))
		})
	}
}
