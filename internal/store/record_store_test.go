package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amterp/dairy/internal/block"
	dairyerr "github.com/amterp/dairy/internal/errors"
)

func setupTestStore(t *testing.T, kind Kind, content string) *FileRecordStore {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, kind.Name+".txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to seed store: %v", err)
		}
	}
	return NewRecordStore(path, kind, nil)
}

func staffBlock(name, staffType string) string {
	return block.Encode(block.StaffSchema.Bind(name, "Active", "8", "500", staffType), block.DashSentinel)
}

func animalBlock(id, animalType string) string {
	return block.Encode(
		block.AnimalSchema.Bind(id, "3", "F", "01-01-2024", "hay", "2", "yes", animalType),
		block.AnimalSentinel,
	)
}

func TestFileRecordStore_AppendAndReadAll(t *testing.T) {
	store := setupTestStore(t, AnimalKind, "")

	first := animalBlock("A1", "cow")
	second := animalBlock("A2", "goat")
	if err := store.Append(first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	content, exists, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !exists {
		t.Fatal("expected store to exist after append")
	}
	if content != first+second {
		t.Errorf("content mismatch:\n%s", content)
	}
}

func TestFileRecordStore_ReadAllMissing(t *testing.T) {
	store := setupTestStore(t, AnimalKind, "")

	content, exists, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if exists || content != "" {
		t.Errorf("expected missing store, got exists=%v content=%q", exists, content)
	}

	ok, err := store.Exists()
	if err != nil || ok {
		t.Errorf("Exists() = %v, %v", ok, err)
	}
}

func TestFileRecordStore_AppendMissingDir(t *testing.T) {
	store := NewRecordStore(filepath.Join(t.TempDir(), "nope", "A_record.txt"), AnimalKind, nil)

	err := store.Append(animalBlock("A1", "cow"))
	if err == nil {
		t.Fatal("expected error appending into a missing directory")
	}
	if !dairyerr.IsStoreIO(err) {
		t.Errorf("expected store I/O error, got %v", err)
	}
}

func TestFileRecordStore_FirstMatchWins(t *testing.T) {
	store := setupTestStore(t, AnimalKind, animalBlock("A12", "goat")+animalBlock("A1", "cow"))

	b, found, err := store.First(func(b block.Block) bool {
		return strings.Contains(b.Header(), "A1")
	})
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if v, _ := b.Value(block.FieldAnimalID); v != "A12" {
		t.Errorf("expected first block in file order, got %q", v)
	}
}

func TestFileRecordStore_FilterMissingStore(t *testing.T) {
	store := setupTestStore(t, StaffKind, "")

	blocks, err := store.Filter(func(block.Block) bool { return true })
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}

func TestFileRecordStore_FilterByType(t *testing.T) {
	store := setupTestStore(t, AnimalKind,
		animalBlock("A1", "cow")+animalBlock("A2", "goat")+animalBlock("A3", "cow"))

	blocks, err := store.Filter(func(b block.Block) bool {
		v, _ := b.Value(block.FieldAnimalType)
		return v == "cow"
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 cows, got %d", len(blocks))
	}
	if !blocks[0].Terminated() {
		t.Error("expected terminated block")
	}
}

func TestFileRecordStore_FindLineRun(t *testing.T) {
	content := "intro\n" + staffBlock("Sara", "milker") + "\nStaff Name = Omar\n"
	store := setupTestStore(t, StaffKind, content)

	run, found, err := store.FindLineRun(
		func(line string) bool { return strings.Contains(line, "Sara") },
		func(line string) bool { return strings.HasPrefix(line, "---") || line == "" },
	)
	if err != nil {
		t.Fatalf("FindLineRun failed: %v", err)
	}
	if !found {
		t.Fatal("expected a run")
	}
	if len(run) != 5 {
		t.Fatalf("expected 5 lines, got %d: %v", len(run), run)
	}
	if run[0] != "Staff Name = Sara" || run[4] != "Staff type = milker" {
		t.Errorf("unexpected run: %v", run)
	}
}

func TestFileRecordStore_FindLineRunMissing(t *testing.T) {
	store := setupTestStore(t, StaffKind, staffBlock("Sara", "milker"))

	run, found, err := store.FindLineRun(
		func(line string) bool { return strings.Contains(line, "Zed") },
		func(string) bool { return true },
	)
	if err != nil {
		t.Fatalf("FindLineRun failed: %v", err)
	}
	if found || len(run) != 0 {
		t.Errorf("expected no run, got %v", run)
	}
}

func TestEnsureExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(existing, []byte("data\n"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	created := filepath.Join(dir, "new.txt")

	if err := EnsureExists(existing, created); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "data\n" {
		t.Errorf("existing file changed: %q", data)
	}
	info, err := os.Stat(created)
	if err != nil {
		t.Fatalf("expected file created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}
