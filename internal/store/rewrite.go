package store

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	dairyerr "github.com/amterp/dairy/internal/errors"
	"github.com/amterp/dairy/internal/id"
)

// Rewrite stages.
const (
	StageOpen    = "open"
	StageTemp    = "create-temp"
	StageCopy    = "copy"
	StageFlush   = "flush"
	StageReplace = "replace"
)

// RewriteRule selects the lines a rewrite drops. A line accepted by
// IsTarget starts a skip region; the region ends after (and including) the
// first line accepted by IsEnd. A target line inside a region is counted
// again and keeps the region open.
type RewriteRule struct {
	IsTarget func(line string) bool
	IsEnd    func(line string) bool
}

// Rewrite streams the store into a temp file beside it, leaving out every
// region selected by rule, then renames the temp file over the store. The
// original file is never truncated in place, so a failure before the
// rename leaves it intact. It returns how many target lines were seen.
// A missing store is not an error and removes nothing.
func (s *FileRecordStore) Rewrite(rule RewriteRule) (int, error) {
	src, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, s.rewriteErr(StageOpen, err)
	}
	defer src.Close()

	tmpPath := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+"."+id.Generate()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return 0, s.rewriteErr(StageTemp, err)
	}

	removed, err := copyExcept(src, tmp, rule)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, s.rewriteErr(StageCopy, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, s.rewriteErr(StageFlush, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, s.rewriteErr(StageFlush, err)
	}
	src.Close()

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return 0, s.rewriteErr(StageReplace, err)
	}

	s.logger.Info("store rewritten", zap.Int("removed", removed))
	return removed, nil
}

func copyExcept(src *os.File, dst *os.File, rule RewriteRule) (int, error) {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	w := bufio.NewWriter(dst)

	removed := 0
	skipping := false
	for sc.Scan() {
		line := sc.Text()
		if rule.IsTarget(line) {
			removed++
			skipping = true
			continue
		}
		if skipping {
			if rule.IsEnd(line) {
				skipping = false
			}
			continue
		}
		if _, err := w.WriteString(line); err != nil {
			return 0, errors.Wrap(err, "write line")
		}
		if err := w.WriteByte('\n'); err != nil {
			return 0, errors.Wrap(err, "write line")
		}
	}
	if err := sc.Err(); err != nil {
		return 0, errors.Wrap(err, "read store")
	}
	if err := w.Flush(); err != nil {
		return 0, errors.Wrap(err, "flush")
	}
	return removed, nil
}

func (s *FileRecordStore) rewriteErr(stage string, err error) error {
	s.logger.Error("store rewrite failed", zap.String("stage", stage), zap.Error(err))
	return &dairyerr.RewriteError{Path: s.path, Stage: stage, Err: err}
}
