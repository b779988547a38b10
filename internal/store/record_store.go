package store

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/block"
	dairyerr "github.com/amterp/dairy/internal/errors"
)

// Kind binds a store to the way its blocks start and end.
type Kind struct {
	Name   string
	Start  block.StartFunc
	Policy block.Policy
}

var (
	AnimalKind = Kind{
		Name:   "animal",
		Start:  block.HeaderPrefix(block.AnimalSchema.Header()),
		Policy: block.AnimalPolicy,
	}
	StaffKind = Kind{
		Name:   "staff",
		Start:  block.HeaderPrefix(block.StaffSchema.Header()),
		Policy: block.StaffPolicy,
	}
	// MilkKind starts blocks on "Date = " (with the trailing space), so
	// daily-summary blocks never open a block of their own.
	MilkKind = Kind{
		Name:   "milk",
		Start:  block.HeaderPrefix(block.MilkSchema.Header() + " "),
		Policy: block.MilkPolicy,
	}
)

// FileRecordStore implements RecordStore over a plain text file.
// There is no locking: a rewrite racing an append from another process can
// lose the appended block.
type FileRecordStore struct {
	path   string
	kind   Kind
	logger *zap.Logger
}

// NewRecordStore creates a store for the file at path.
func NewRecordStore(path string, kind Kind, logger *zap.Logger) *FileRecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileRecordStore{
		path:   path,
		kind:   kind,
		logger: logger.With(zap.String("store", kind.Name)),
	}
}

// Path returns the store's file path.
func (s *FileRecordStore) Path() string {
	return s.path
}

// Kind returns the store's record kind.
func (s *FileRecordStore) Kind() Kind {
	return s.kind
}

// Append writes one serialized block to the end of the file, creating the
// file if needed.
func (s *FileRecordStore) Append(text string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &dairyerr.StoreError{Op: "append", Path: s.path, Err: errors.Wrap(err, "open for append")}
	}

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return &dairyerr.StoreError{Op: "append", Path: s.path, Err: errors.Wrap(err, "write block")}
	}
	if err := f.Close(); err != nil {
		return &dairyerr.StoreError{Op: "append", Path: s.path, Err: errors.Wrap(err, "close")}
	}

	s.logger.Debug("block appended", zap.Int("bytes", len(text)))
	return nil
}

// ReadAll returns the whole file verbatim. A missing file is reported
// through exists, not as an error.
func (s *FileRecordStore) ReadAll() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, &dairyerr.StoreError{Op: "read", Path: s.path, Err: err}
	}
	return string(data), true, nil
}

// Exists reports whether the store file is present.
func (s *FileRecordStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &dairyerr.StoreError{Op: "stat", Path: s.path, Err: err}
}

// EnsureExists creates each file empty if it is absent. Existing files are
// left untouched.
func EnsureExists(paths ...string) error {
	for _, path := range paths {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return &dairyerr.StoreError{Op: "create", Path: path, Err: err}
		}
		if err := f.Close(); err != nil {
			return &dairyerr.StoreError{Op: "create", Path: path, Err: err}
		}
	}
	return nil
}
