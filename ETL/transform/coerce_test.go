package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"missing field", nil, 0, false},
		{"json number", float64(1234), 1234, false},
		{"json number with fraction", float64(12.9), 12, false},
		{"string integer", "5678", 5678, false},
		{"string float", "123.0", 123, false},
		{"empty string", "", 0, false},
		{"padded string", " 42 ", 42, false},
		{"garbage string", "n/a", 0, true},
		{"wrong type", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceCount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"missing field", nil, "0", false},
		{"json number rounded to two places", float64(1000.505), "1000.51", false},
		{"string amount", "250.125", "250.13", false},
		{"empty string", "", "0", false},
		{"integer number", float64(100), "100", false},
		{"garbage string", "lots", "", true},
		{"negative amount", float64(-5), "", true},
		{"negative string amount", "-1.50", "", true},
		{"wrong type", []any{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want, perr := decimal.NewFromString(tt.want)
			require.NoError(t, perr)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func TestCoerceName(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"missing field", nil, "", false},
		{"string name", "Bengaluru Urban", "Bengaluru Urban", false},
		{"numeric pincode", float64(560001), "560001", false},
		{"wrong type", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceName(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
