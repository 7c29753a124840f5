//go:build !integration

package valueobjects

import "testing"

func TestParseAmountMinor(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		minor int64
	}{
		{name: "whole", raw: "25", valid: true, minor: 25_000_000},
		{name: "fractional", raw: "0.5", valid: true, minor: 500_000},
		{name: "full precision", raw: "1.000001", valid: true, minor: 1_000_001},
		{name: "trimmed", raw: " 3.25 ", valid: true, minor: 3_250_000},
		{name: "too many decimals", raw: "1.0000001", valid: false},
		{name: "negative", raw: "-1", valid: false},
		{name: "empty", raw: "", valid: false},
		{name: "not a number", raw: "ten", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			minor, appErr := ParseAmountMinor(tc.raw)
			if tc.valid {
				if appErr != nil {
					t.Fatalf("expected no error, got %+v", appErr)
				}
				if minor != tc.minor {
					t.Fatalf("expected %d, got %d", tc.minor, minor)
				}
				return
			}

			if appErr == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFormatAmountMinor(t *testing.T) {
	tests := []struct {
		name  string
		minor int64
		want  string
	}{
		{name: "whole", minor: 25_000_000, want: "25"},
		{name: "fractional", minor: 500_000, want: "0.5"},
		{name: "full precision", minor: 1_000_001, want: "1.000001"},
		{name: "zero", minor: 0, want: "0"},
		{name: "negative", minor: -1_500_000, want: "-1.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatAmountMinor(tc.minor); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
