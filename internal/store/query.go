package store

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/block"
	dairyerr "github.com/amterp/dairy/internal/errors"
)

// Scan calls fn for each block in file order until fn returns false.
// A missing file yields no blocks.
func (s *FileRecordStore) Scan(fn func(block.Block) bool) error {
	discarded, err := block.ScanFile(s.path, s.kind.Start, s.kind.Policy, fn)
	if discarded > 0 {
		s.logger.Debug("dropped unterminated blocks", zap.Int("count", discarded))
	}
	if err != nil {
		return &dairyerr.StoreError{Op: "scan", Path: s.path, Err: err}
	}
	return nil
}

// First returns the earliest block accepted by match.
func (s *FileRecordStore) First(match func(block.Block) bool) (block.Block, bool, error) {
	var (
		found block.Block
		ok    bool
	)
	err := s.Scan(func(b block.Block) bool {
		if match(b) {
			found, ok = b, true
			return false
		}
		return true
	})
	return found, ok, err
}

// Filter returns every block accepted by match, in file order.
func (s *FileRecordStore) Filter(match func(block.Block) bool) ([]block.Block, error) {
	var out []block.Block
	err := s.Scan(func(b block.Block) bool {
		if match(b) {
			out = append(out, b)
		}
		return true
	})
	return out, err
}

// Lines calls fn for every raw line until fn returns false.
func (s *FileRecordStore) Lines(fn func(line string) bool) error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &dairyerr.StoreError{Op: "read", Path: s.path, Err: errors.Wrap(err, "open")}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !fn(sc.Text()) {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return &dairyerr.StoreError{Op: "read", Path: s.path, Err: errors.Wrap(err, "scan lines")}
	}
	return nil
}

// FindLineRun locates the first line accepted by match and returns it with
// the lines after it, stopping before the first line accepted by stop. The
// run is not aligned to block boundaries.
func (s *FileRecordStore) FindLineRun(match, stop func(line string) bool) ([]string, bool, error) {
	var (
		run     []string
		started bool
	)
	err := s.Lines(func(line string) bool {
		if !started {
			if match(line) {
				started = true
				run = append(run, line)
			}
			return true
		}
		if stop(line) {
			return false
		}
		run = append(run, line)
		return true
	})
	return run, started, err
}
