package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a float the way the store has always written totals.
// Magnitudes in [1e-3, 1e7) print as plain decimals with at least one
// fractional digit ("8.0", "8.5"); others use a mantissa and exponent
// ("1.25E7", "5.0E-4"). Non-finite values print as "Infinity", "-Infinity"
// and "NaN".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		return withFraction(strconv.FormatFloat(v, 'f', -1, 64))
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return withFraction(mantissa) + "E" + strconv.Itoa(n)
}

func withFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	return s
}

// ParseNumber parses a trimmed decimal value. Infinite and NaN results are
// accepted only when spelled "Infinity" or "NaN", optionally signed; short
// forms such as "inf" are rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if (math.IsInf(v, 0) || math.IsNaN(v)) && !isSpecialSpelling(s) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func isSpecialSpelling(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return s == "Infinity" || s == "NaN"
}
