package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	paths := NewPaths("/farm")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"animal", paths.AnimalStorePath(), "/farm/A_record.txt"},
		{"milk", paths.MilkStorePath(), "/farm/milk_record.txt"},
		{"staff", paths.StaffStorePath(), "/farm/staff_record.txt"},
		{"staff login", paths.StaffLoginPath(), "/farm/staff_login.txt"},
		{"owner login", paths.OwnerLoginPath(), "/farm/owner_login.txt"},
		{"settings", paths.SettingsPath(), "/farm/dairy.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if len(paths.StorePaths()) != 5 {
		t.Errorf("StorePaths() returned %d paths", len(paths.StorePaths()))
	}
}

func TestPaths_EmptyDataDir(t *testing.T) {
	paths := NewPaths("")
	if paths.DataDir() != "." {
		t.Errorf("DataDir() = %q, want .", paths.DataDir())
	}
	if paths.AnimalStorePath() != AnimalFileName {
		t.Errorf("AnimalStorePath() = %q", paths.AnimalStorePath())
	}
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	paths := NewPaths(t.TempDir())

	cfg, err := LoadSettings(paths, "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.DateLayout != DefaultDateLayout {
		t.Errorf("DateLayout = %q", cfg.DateLayout)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	paths := NewPaths(dir)

	content := `
log_level = "info"
port = 4000
price_per_liter = 1.5
aggregate_cron = "0 20 * * *"
`
	if err := os.WriteFile(paths.SettingsPath(), []byte(content), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	t.Setenv("DAIRY_PORT", "4100")

	cfg, err := LoadSettings(paths, "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if cfg.Port != 4100 {
		t.Errorf("Port = %d, want env override 4100", cfg.Port)
	}
	if cfg.PricePerLiter != 1.5 {
		t.Errorf("PricePerLiter = %v", cfg.PricePerLiter)
	}
	if cfg.AggregateCron != "0 20 * * *" {
		t.Errorf("AggregateCron = %q", cfg.AggregateCron)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadSettings_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("DAIRY_PRICE_PER_LITER=2.25\n"), 0644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DAIRY_PRICE_PER_LITER") })

	cfg, err := LoadSettings(NewPaths(dir), envFile)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if cfg.PricePerLiter != 2.25 {
		t.Errorf("PricePerLiter = %v, want 2.25", cfg.PricePerLiter)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "port = ["},
		{"bad port", "port = 70000"},
		{"bad level", `log_level = "chatty"`},
		{"negative price", "price_per_liter = -1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := NewPaths(t.TempDir())
			if err := os.WriteFile(paths.SettingsPath(), []byte(tt.content), 0644); err != nil {
				t.Fatalf("write settings: %v", err)
			}
			if _, err := LoadSettings(paths, ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	paths := NewPaths(filepath.Join(t.TempDir(), "nested"))

	cfg := DefaultSettings()
	cfg.PricePerLiter = 3
	if err := cfg.Save(paths); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadSettings(paths, "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.PricePerLiter != 3 {
		t.Errorf("PricePerLiter = %v, want 3", loaded.PricePerLiter)
	}
}
