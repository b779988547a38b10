package util

import (
	"math"
	"testing"
)

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, substr string
		want      bool
	}{
		{"Animal Type = Cow", "cow", true},
		{"Animal Type = COW", "Cow", true},
		{"Staff Name = Amirah", "AMIR", true},
		{"Animal Type = goat", "cow", false},
		{"anything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.substr, func(t *testing.T) {
			if got := ContainsFold(tt.s, tt.substr); got != tt.want {
				t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.s, tt.substr, got, tt.want)
			}
		})
	}
}

func TestHasPrefixFold(t *testing.T) {
	if !HasPrefixFold("ANIMAL TYPE = cow", "animal type =") {
		t.Error("expected case-insensitive prefix match")
	}
	if HasPrefixFold("Feed Type = hay", "animal type =") {
		t.Error("unexpected prefix match")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8.5, "8.5"},
		{8, "8.0"},
		{0, "0.0"},
		{12.25, "12.25"},
		{-3, "-3.0"},
		{0.3, "0.3"},
		{0.001, "0.001"},
		{9999999, "9999999.0"},
		{12500000, "1.25E7"},
		{1e7, "1.0E7"},
		{0.0005, "5.0E-4"},
		{-0.00012, "-1.2E-4"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	if v, err := ParseNumber(" 3.5 "); err != nil || v != 3.5 {
		t.Errorf("ParseNumber = %v, %v", v, err)
	}
	if _, err := ParseNumber("abc"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func TestParseNumber_NonFinite(t *testing.T) {
	rejected := []string{"inf", "+inf", "-Inf", "INF", "infinity", "nan", "NAN"}
	for _, in := range rejected {
		t.Run(in, func(t *testing.T) {
			if v, err := ParseNumber(in); err == nil {
				t.Errorf("ParseNumber(%q) = %v, want error", in, v)
			}
		})
	}

	if v, err := ParseNumber(" Infinity "); err != nil || !math.IsInf(v, 1) {
		t.Errorf("ParseNumber(Infinity) = %v, %v", v, err)
	}
	if v, err := ParseNumber("-Infinity"); err != nil || !math.IsInf(v, -1) {
		t.Errorf("ParseNumber(-Infinity) = %v, %v", v, err)
	}
	if v, err := ParseNumber("NaN"); err != nil || !math.IsNaN(v) {
		t.Errorf("ParseNumber(NaN) = %v, %v", v, err)
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"bob,pw", 2},
		{"bob,pw,", 2},
		{"bob,", 1},
		{",pw", 2},
		{"a,b,c", 3},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitFields(tt.in, ","); len(got) != tt.want {
				t.Errorf("SplitFields(%q) = %q, want %d fields", tt.in, got, tt.want)
			}
		})
	}
}
