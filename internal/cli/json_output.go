package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/service"
)

// Record is one parsed block keyed by field name.
type Record map[string]string

// RecordsOutput wraps a lookup for JSON output. Records is always an array,
// never null.
type RecordsOutput struct {
	Found   bool     `json:"found"`
	Message string   `json:"message"`
	Records []Record `json:"records"`
}

// NewRecordsOutput parses the lookup's store text into records.
func NewRecordsOutput(lookup service.Lookup, schema block.Schema) RecordsOutput {
	return RecordsOutput{
		Found:   lookup.Found,
		Message: strings.TrimSpace(lookup.Message),
		Records: parseRecords(lookup.Text, schema),
	}
}

// parseRecords splits store text into records. A header line opens a
// record; other "name = value" lines fill it. Sentinels and unrecognized
// lines are ignored.
func parseRecords(text string, schema block.Schema) []Record {
	records := []Record{}
	header := schema.Header()

	var current Record
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, header) {
			current = Record{}
			records = append(records, current)
		}
		if current == nil {
			continue
		}
		if f, ok := block.ParseField(line); ok {
			current[f.Name] = f.Value
		}
	}
	return records
}

// MessageOutput wraps a status message for JSON output.
type MessageOutput struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
