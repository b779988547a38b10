package store

import "github.com/amterp/dairy/internal/block"

// RecordStore handles one flat file of blocks of a single record kind.
type RecordStore interface {
	Path() string
	Kind() Kind
	Append(text string) error
	ReadAll() (content string, exists bool, err error)
	Exists() (bool, error)
	Scan(fn func(block.Block) bool) error
	First(match func(block.Block) bool) (block.Block, bool, error)
	Filter(match func(block.Block) bool) ([]block.Block, error)
	Lines(fn func(line string) bool) error
	FindLineRun(match, stop func(line string) bool) ([]string, bool, error)
	Rewrite(rule RewriteRule) (int, error)
}

// CredentialStore handles a two-column username,password file.
type CredentialStore interface {
	Exists(username string) (bool, error)
	Validate(username, password string) (bool, error)
	Append(username, password string) error
}
