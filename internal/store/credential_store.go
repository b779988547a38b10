package store

import (
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/util"
)

const credentialSep = ","

// FileCredentialStore reads and appends "username,password" lines.
// Passwords are stored as entered.
type FileCredentialStore struct {
	lines *FileRecordStore
}

// NewCredentialStore creates a credential store for the file at path.
func NewCredentialStore(path string, logger *zap.Logger) *FileCredentialStore {
	return &FileCredentialStore{
		lines: NewRecordStore(path, Kind{Name: "credentials"}, logger),
	}
}

// Exists reports whether a two-field line is registered to username.
func (c *FileCredentialStore) Exists(username string) (bool, error) {
	found := false
	err := c.lines.Lines(func(line string) bool {
		parts := util.SplitFields(line, credentialSep)
		if len(parts) == 2 && parts[0] == username {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// Validate reports whether a line holds exactly username and password.
// Lines that don't split into two fields never match.
func (c *FileCredentialStore) Validate(username, password string) (bool, error) {
	found := false
	err := c.lines.Lines(func(line string) bool {
		parts := util.SplitFields(line, credentialSep)
		if len(parts) == 2 && parts[0] == username && parts[1] == password {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// Append adds one credential line.
func (c *FileCredentialStore) Append(username, password string) error {
	return c.lines.Append(username + credentialSep + password + "\n")
}
