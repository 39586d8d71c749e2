package menu

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"9.99", "$9.99"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"2.675", "$2.68"},
		{"0.005", "$0.01"},
		{"-3.1", "-$3.10"},
		{"-1000", "-$1,000.00"},
		{"-0.001", "$0.00"},
		{"100000000000000000000", "$100,000,000,000,000,000,000.00"},
		{"9223372036854775808.125", "$9,223,372,036,854,775,808.13"},
		{"-123456789012345678901.5", "-$123,456,789,012,345,678,901.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatPrice(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("FormatPrice(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		90:    "90",
		85.5:  "85.5",
		-1.25: "-1.25",
	}
	for in, want := range tests {
		if got := formatScore(in); got != want {
			t.Errorf("formatScore(%v) = %q, want %q", in, got, want)
		}
	}
}
