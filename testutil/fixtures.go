package testutil

import (
	"os"
	"testing"

	"github.com/amterp/dairy/internal/config"
	"github.com/amterp/dairy/internal/model"
)

// TestAnimal returns an animal with sensible test defaults.
func TestAnimal(id, animalType string) model.Animal {
	return model.Animal{
		ID:           id,
		Age:          "3",
		Gender:       "F",
		PurchaseDate: "01-01-2024",
		FeedType:     "hay",
		TimesPerDay:  "2",
		Vaccination:  "Y",
		Type:         animalType,
	}
}

// TestStaff returns a staff member with sensible test defaults.
func TestStaff(name, staffType string) model.Staff {
	return model.Staff{
		Name:         name,
		WorkStatus:   "Active",
		WorkingHours: "8",
		Salary:       "500",
		Type:         staffType,
	}
}

// TestMilkEntry returns a milk entry priced at 2 per liter.
func TestMilkEntry(date, animalID, quantity string) model.MilkEntry {
	return model.MilkEntry{
		Date:          date,
		AnimalID:      animalID,
		Quantity:      quantity,
		StaffName:     "Sara",
		PricePerLiter: "2",
	}
}

// TempDataDir creates a temporary data directory for testing.
// Returns the dir path and a cleanup function.
func TempDataDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "dairy-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// NewTestPaths creates Paths rooted at the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir)
}
