package config

import (
	"os"
	"path/filepath"
)

const (
	AnimalFileName     = "A_record.txt"
	MilkFileName       = "milk_record.txt"
	StaffFileName      = "staff_record.txt"
	StaffLoginFileName = "staff_login.txt"
	OwnerLoginFileName = "owner_login.txt"
	SettingsFileName   = "dairy.toml"
	EnvFileName        = ".env"
)

// Paths provides path resolution for dairy data files.
type Paths struct {
	dataDir string
}

// NewPaths creates a new Paths resolver rooted at dataDir.
// An empty dataDir means the current working directory.
func NewPaths(dataDir string) *Paths {
	return &Paths{dataDir: dataDir}
}

// DataDir returns the directory holding every store file.
func (p *Paths) DataDir() string {
	if p.dataDir == "" {
		return "."
	}
	return p.dataDir
}

// AnimalStorePath returns the animal store file.
func (p *Paths) AnimalStorePath() string {
	return filepath.Join(p.DataDir(), AnimalFileName)
}

// MilkStorePath returns the milk store file.
func (p *Paths) MilkStorePath() string {
	return filepath.Join(p.DataDir(), MilkFileName)
}

// StaffStorePath returns the staff store file.
func (p *Paths) StaffStorePath() string {
	return filepath.Join(p.DataDir(), StaffFileName)
}

// StaffLoginPath returns the staff credential file.
func (p *Paths) StaffLoginPath() string {
	return filepath.Join(p.DataDir(), StaffLoginFileName)
}

// OwnerLoginPath returns the owner credential file.
func (p *Paths) OwnerLoginPath() string {
	return filepath.Join(p.DataDir(), OwnerLoginFileName)
}

// SettingsPath returns the settings file.
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.DataDir(), SettingsFileName)
}

// StorePaths lists every file created at startup.
func (p *Paths) StorePaths() []string {
	return []string{
		p.AnimalStorePath(),
		p.MilkStorePath(),
		p.StaffStorePath(),
		p.StaffLoginPath(),
		p.OwnerLoginPath(),
	}
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir(), 0755)
}
