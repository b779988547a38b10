package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultPort       = 3000
	DefaultDateLayout = "02-01-2006"
	DefaultLogLevel   = "warn"
)

// Settings is the dairy.toml surface, overlaid with DAIRY_* environment
// variables.
type Settings struct {
	LogLevel      string  `toml:"log_level"`
	Port          int     `toml:"port"`
	PricePerLiter float64 `toml:"price_per_liter"`
	AggregateCron string  `toml:"aggregate_cron"`
	DateLayout    string  `toml:"date_layout"`
}

// DefaultSettings returns settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:   DefaultLogLevel,
		Port:       DefaultPort,
		DateLayout: DefaultDateLayout,
	}
}

// DataDirFromEnv resolves the data directory: an explicit value wins, then
// DAIRY_DATA_DIR (optionally from .env), then the working directory.
func DataDirFromEnv(explicit string) string {
	if explicit != "" {
		return explicit
	}
	// Missing .env files are fine; configuration may come from the environment.
	_ = godotenv.Load()
	return os.Getenv("DAIRY_DATA_DIR")
}

// LoadSettings reads dairy.toml from the data directory (a missing file
// yields defaults), then applies environment overrides from envFile and the
// process environment.
func LoadSettings(paths *Paths, envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	}

	cfg := DefaultSettings()

	data, err := os.ReadFile(paths.SettingsPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", SettingsFileName, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("DAIRY_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("DAIRY_AGGREGATE_CRON"); v != "" {
		s.AggregateCron = v
	}
	if v := os.Getenv("DAIRY_DATE_LAYOUT"); v != "" {
		s.DateLayout = v
	}
	if v := os.Getenv("DAIRY_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DAIRY_PORT must be a number: %w", err)
		}
		s.Port = port
	}
	if v := os.Getenv("DAIRY_PRICE_PER_LITER"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DAIRY_PRICE_PER_LITER must be a number: %w", err)
		}
		s.PricePerLiter = price
	}
	return nil
}

// Validate ensures settings are usable, filling blanks with defaults.
func (s *Settings) Validate() error {
	if s == nil {
		return errors.New("settings are nil")
	}

	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level %q is not a valid level", s.LogLevel)
	}

	if s.DateLayout == "" {
		s.DateLayout = DefaultDateLayout
	}

	switch {
	case s.Port <= 0 || s.Port > 65535:
		return fmt.Errorf("port %d is out of range", s.Port)
	case s.PricePerLiter < 0:
		return errors.New("price_per_liter must not be negative")
	}

	return nil
}

// Save writes settings to dairy.toml.
func (s *Settings) Save(paths *Paths) error {
	if err := paths.EnsureDataDir(); err != nil {
		return err
	}

	f, err := os.Create(paths.SettingsPath())
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}
