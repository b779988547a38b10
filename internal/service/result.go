package service

import (
	"strings"

	dairyerr "github.com/amterp/dairy/internal/errors"
)

// Lookup is the result of a read query. Text holds the matched store text
// exactly as stored; Message is what a front end shows, banners included,
// or the "not found" notice when nothing matched.
type Lookup struct {
	Found   bool   `json:"found"`
	Count   int    `json:"count"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// Removal is the result of a delete-rewrite.
type Removal struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

func notFound(message string) Lookup {
	return Lookup{Message: message}
}

func requireKey(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return dairyerr.RequiredField(field)
	}
	return nil
}

func joinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
