package block

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func scanAll(t *testing.T, input string, start StartFunc, policy Policy) ([]Block, *Scanner) {
	t.Helper()
	sc := NewScanner(strings.NewReader(input), start, policy)
	var blocks []Block
	for sc.Next() {
		blocks = append(blocks, sc.Block())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	return blocks, sc
}

func TestSentinel(t *testing.T) {
	if got := len(AnimalSentinel.Line()); got != 87 {
		t.Errorf("animal sentinel width = %d, want 87", got)
	}
	if got := DashSentinel.Line(); got != strings.Repeat("-", 50) {
		t.Errorf("dash sentinel = %q", got)
	}
	if got := SummarySentinel.Line(); got != strings.Repeat("=", 50) {
		t.Errorf("summary sentinel = %q", got)
	}

	tests := []struct {
		name      string
		sentinel  Sentinel
		line      string
		wantShort bool
		wantFull  bool
	}{
		{"full animal line", AnimalSentinel, AnimalSentinel.Line(), true, true},
		{"three equals", AnimalSentinel, "===", true, false},
		{"two equals", AnimalSentinel, "==", false, false},
		{"dash prefix", DashSentinel, "--- Staff Record Found ---", true, false},
		{"full dashes", DashSentinel, DashSentinel.Line(), true, true},
		{"field line", DashSentinel, "Staff Name = ---", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sentinel.Matches(tt.line); got != tt.wantShort {
				t.Errorf("Matches(%q) = %v, want %v", tt.line, got, tt.wantShort)
			}
			if got := tt.sentinel.MatchesFull(tt.line); got != tt.wantFull {
				t.Errorf("MatchesFull(%q) = %v, want %v", tt.line, got, tt.wantFull)
			}
		})
	}
}

func TestEncode_StaffBlock(t *testing.T) {
	fields := StaffSchema.Bind("Amir", "Active", "8", "1200", "Milkman")
	got := Encode(fields, DashSentinel)

	want := "Staff Name = Amir\n" +
		"Work Status = Active\n" +
		"Working Hours = 8\n" +
		"Salary = 1200\n" +
		"Staff type = Milkman\n" +
		strings.Repeat("-", 50) + "\n"

	if got != want {
		t.Errorf("Encode mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncode_ValueIsNotEscaped(t *testing.T) {
	fields := []Field{
		{Name: FieldAnimalID, Value: "A1"},
		{Name: FieldFeedType, Value: "hay\n" + AnimalSentinel.Line()},
		{Name: FieldAnimalType, Value: "cow"},
	}
	encoded := Encode(fields, AnimalSentinel)

	blocks, _ := scanAll(t, encoded, HeaderPrefix("Animal ID ="), AnimalPolicy)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	// The embedded sentinel ends the block early; the type line is orphaned.
	want := []string{"Animal ID = A1", "Feed Type = hay"}
	if !reflect.DeepEqual(blocks[0].Lines, want) {
		t.Errorf("Lines = %q, want %q", blocks[0].Lines, want)
	}
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("Milk Quantity = 5 = 6 liters")
	if !ok {
		t.Fatal("expected field")
	}
	if f.Name != "Milk Quantity" || f.Value != "5 = 6 liters" {
		t.Errorf("ParseField = %+v", f)
	}

	if _, ok := ParseField("Daily Summary for 01-01-2024:"); ok {
		t.Error("summary header should not parse as a field")
	}
}

func TestSchema(t *testing.T) {
	if got := MilkSchema.Index(FieldMilkQuantity); got != 2 {
		t.Errorf("milk quantity index = %d, want 2", got)
	}
	if got := MilkSchema.Index("Nope"); got != -1 {
		t.Errorf("unknown field index = %d, want -1", got)
	}
	if got := AnimalSchema.Header(); got != "Animal ID =" {
		t.Errorf("animal header = %q", got)
	}
	if got := (Schema{}).Header(); got != "" {
		t.Errorf("empty schema header = %q", got)
	}

	fields := MilkSchema.Bind("01-01-2024", "A1")
	if len(fields) != len(MilkSchema.Fields) {
		t.Fatalf("Bind returned %d fields", len(fields))
	}
	if fields[1].Value != "A1" || fields[4].Value != "" {
		t.Errorf("Bind = %+v", fields)
	}
}

func TestScanner_ExplicitPolicy(t *testing.T) {
	input := "stray line\n" +
		"Staff Name = Amir\n" +
		"Staff type = Milkman\n" +
		DashSentinel.Line() + "\n" +
		"\n" +
		"Staff Name = Sara\n" +
		"Staff type = Cleaner\n" +
		DashSentinel.Line() + "\n"

	blocks, sc := scanAll(t, input, HeaderPrefix("Staff Name ="), StaffPolicy)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Header() != "Staff Name = Amir" {
		t.Errorf("first header = %q", blocks[0].Header())
	}
	if blocks[0].StartLine != 2 {
		t.Errorf("first StartLine = %d, want 2", blocks[0].StartLine)
	}
	if !blocks[1].Terminated() {
		t.Error("second block should be terminated")
	}
	if v, _ := blocks[1].Value(FieldStaffType); v != "Cleaner" {
		t.Errorf("staff type = %q", v)
	}
	if sc.Discarded() != 0 {
		t.Errorf("Discarded = %d, want 0", sc.Discarded())
	}
}

func TestScanner_ExplicitPolicyDropsPartialBlock(t *testing.T) {
	input := "Animal ID = A1\n" +
		"Animal Type = cow\n" +
		"Animal ID = A2\n" +
		"Animal Type = goat\n" +
		AnimalSentinel.Line() + "\n"

	blocks, sc := scanAll(t, input, HeaderPrefix("Animal ID ="), AnimalPolicy)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Header() != "Animal ID = A2" {
		t.Errorf("header = %q, want A2", blocks[0].Header())
	}
	if sc.Discarded() != 1 {
		t.Errorf("Discarded = %d, want 1", sc.Discarded())
	}
}

func TestScanner_ExplicitPolicyEmitsUnterminatedTail(t *testing.T) {
	input := "Animal ID = A1\nAnimal Type = cow\n"

	blocks, _ := scanAll(t, input, HeaderPrefix("Animal ID ="), AnimalPolicy)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Terminated() {
		t.Error("tail block should not be terminated")
	}
	if blocks[0].Raw() != input {
		t.Errorf("Raw = %q, want %q", blocks[0].Raw(), input)
	}
}

func TestScanner_ImplicitPolicy(t *testing.T) {
	input := "Date = 01-01-2024\n" +
		"Animal ID = A1\n" +
		"Milk Quantity = 5 liters\n" +
		DashSentinel.Line() + "\n" +
		"Daily Summary for 01-01-2024:\n" +
		"Total Milk = 5.0 liters\n" +
		SummarySentinel.Line() + "\n" +
		"Date = 02-01-2024\n" +
		"Animal ID = A2\n"

	blocks, _ := scanAll(t, input, HeaderPrefix("Date = "), MilkPolicy)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	// Sentinel lines are ordinary lines under the implicit policy.
	if len(blocks[0].Lines) != 7 {
		t.Errorf("first block has %d lines, want 7: %q", len(blocks[0].Lines), blocks[0].Lines)
	}
	if blocks[0].Terminated() {
		t.Error("implicit blocks never carry a terminator")
	}
	if line, _ := blocks[0].At(MilkSchema.Index(FieldMilkQuantity)); line != "Milk Quantity = 5 liters" {
		t.Errorf("quantity line = %q", line)
	}
	if blocks[1].Header() != "Date = 02-01-2024" || len(blocks[1].Lines) != 2 {
		t.Errorf("second block = %q", blocks[1].Lines)
	}
}

func TestScanner_Empty(t *testing.T) {
	blocks, _ := scanAll(t, "", HeaderPrefix("Date = "), MilkPolicy)
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}

func TestScanFile_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	calls := 0
	discarded, err := ScanFile(path, HeaderPrefix("Animal ID ="), AnimalPolicy, func(Block) bool {
		calls++
		return true
	})
	if err != nil {
		t.Fatalf("ScanFile on missing file returned error: %v", err)
	}
	if calls != 0 || discarded != 0 {
		t.Errorf("expected no callbacks, got %d (discarded %d)", calls, discarded)
	}
}

func TestScanFile_StopsEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A_record.txt")
	content := Encode(AnimalSchema.Bind("A1"), AnimalSentinel) +
		Encode(AnimalSchema.Bind("A2"), AnimalSentinel) +
		Encode(AnimalSchema.Bind("A3"), AnimalSentinel)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var seen []string
	_, err := ScanFile(path, HeaderPrefix("Animal ID ="), AnimalPolicy, func(b Block) bool {
		seen = append(seen, b.Header())
		return len(seen) < 2
	})
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("expected 2 blocks before stop, got %d", len(seen))
	}
}

func TestScanFile_ReportsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A_record.txt")
	content := "Animal ID = A1\nAnimal Type = cow\n" +
		Encode(AnimalSchema.Bind("A2"), AnimalSentinel)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var seen []string
	discarded, err := ScanFile(path, HeaderPrefix("Animal ID ="), AnimalPolicy, func(b Block) bool {
		seen = append(seen, b.Header())
		return true
	})
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if discarded != 1 {
		t.Errorf("discarded = %d, want 1", discarded)
	}
	if len(seen) != 1 || seen[0] != "Animal ID = A2" {
		t.Errorf("seen = %q, want only A2", seen)
	}
}

func TestPolicyKind_String(t *testing.T) {
	if ImplicitByHeader.String() != "implicit-by-header" {
		t.Errorf("String() = %q", ImplicitByHeader.String())
	}
	if PolicyKind(42).String() != "unknown" {
		t.Errorf("String() = %q", PolicyKind(42).String())
	}
}
