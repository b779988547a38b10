package block

import "strings"

// Separator sits between a field name and its value.
const Separator = " = "

// Field is one name/value pair of a record.
type Field struct {
	Name  string
	Value string
}

// FormatField renders "<name> = <value>". Values are not escaped: a value
// containing a newline or a terminator string corrupts the block, and
// readers see it exactly as written.
func FormatField(name, value string) string {
	return name + Separator + value
}

// Encode serializes fields in order, followed by the sentinel line.
// Every line, including the sentinel, ends in "\n".
func Encode(fields []Field, end Sentinel) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = FormatField(f.Name, f.Value)
	}
	return EncodeLines(lines, end)
}

// EncodeLines frames raw lines with the sentinel line. Used for blocks whose
// first line is not a field, like milk daily summaries.
func EncodeLines(lines []string, end Sentinel) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(end.Line())
	b.WriteByte('\n')
	return b.String()
}

// ParseField splits a "<name> = <value>" line on the first separator.
func ParseField(line string) (Field, bool) {
	name, value, ok := strings.Cut(line, Separator)
	if !ok {
		return Field{}, false
	}
	return Field{Name: name, Value: value}, true
}
