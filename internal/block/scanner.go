package block

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// maxLineSize bounds a single store line. Values are free text, so this is
// generous compared to bufio's 64KiB default.
const maxLineSize = 1024 * 1024

// Block is one record's raw lines, header first. The terminator line, when
// there is one, is kept apart from Lines.
type Block struct {
	Lines      []string
	Terminator string
	StartLine  int // 1-based line number of the header
}

// Header returns the block's first line.
func (b Block) Header() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0]
}

// Terminated reports whether the block ended on an explicit sentinel line.
func (b Block) Terminated() bool {
	return b.Terminator != ""
}

// At returns the line at a schema offset.
func (b Block) At(i int) (string, bool) {
	if i < 0 || i >= len(b.Lines) {
		return "", false
	}
	return b.Lines[i], true
}

// Value returns the value of the first "<name> = <value>" line.
func (b Block) Value(name string) (string, bool) {
	for _, line := range b.Lines {
		if f, ok := ParseField(line); ok && f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Text renders the block's lines, each followed by a newline, without the
// terminator.
func (b Block) Text() string {
	return joinLines(b.Lines)
}

// Raw renders the block as stored, including its terminator line.
func (b Block) Raw() string {
	if !b.Terminated() {
		return b.Text()
	}
	return b.Text() + b.Terminator + "\n"
}

func joinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Scanner reads blocks from a line stream. A header line always opens a new
// block: under an explicit policy an unterminated partial block is dropped,
// under ImplicitByHeader the open block is emitted. Lines outside any block
// are skipped. At end of input the open block, if any, is emitted.
type Scanner struct {
	lines     *bufio.Scanner
	start     StartFunc
	policy    Policy
	open      *Block
	block     Block
	lineNo    int
	discarded int
	err       error
}

// NewScanner creates a Scanner over r.
func NewScanner(r io.Reader, start StartFunc, policy Policy) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{
		lines:  lines,
		start:  start,
		policy: policy,
	}
}

// Next advances to the next block. It returns false at end of input or on
// a read error; check Err afterwards.
func (s *Scanner) Next() bool {
	for s.lines.Scan() {
		line := s.lines.Text()
		s.lineNo++

		if s.start(line) {
			prev := s.open
			s.open = &Block{Lines: []string{line}, StartLine: s.lineNo}
			if prev == nil {
				continue
			}
			if s.policy.Explicit() {
				s.discarded++
				continue
			}
			s.block = *prev
			return true
		}

		if s.open == nil {
			continue
		}

		if s.policy.IsTerminator(line) {
			s.open.Terminator = line
			s.block = *s.open
			s.open = nil
			return true
		}

		s.open.Lines = append(s.open.Lines, line)
	}

	if err := s.lines.Err(); err != nil {
		s.err = errors.Wrap(err, "read store")
		s.open = nil
		return false
	}

	if s.open != nil {
		s.block = *s.open
		s.open = nil
		return true
	}
	return false
}

// Block returns the block produced by the last call to Next.
func (s *Scanner) Block() Block {
	return s.block
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Discarded counts partial blocks dropped because a new header appeared
// before their terminator.
func (s *Scanner) Discarded() int {
	return s.discarded
}

// ScanFile opens path and calls fn for each block until fn returns false.
// It returns how many partial blocks were dropped. A missing file yields no
// blocks and no error.
func ScanFile(path string, start StartFunc, policy Policy, fn func(Block) bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	sc := NewScanner(f, start, policy)
	for sc.Next() {
		if !fn(sc.Block()) {
			break
		}
	}
	return sc.Discarded(), sc.Err()
}
