package util

import "strings"

// SplitFields splits s on sep and drops trailing empty fields, so
// "bob,pw," yields two fields and "bob," yields one.
func SplitFields(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
