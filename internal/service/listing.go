package service

import (
	"slices"
	"strings"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/store"
	"github.com/amterp/dairy/internal/util"
)

// typeMatches collects, for every line starting with typeLabel and
// containing typ (both case-folded), the block's lines from its header
// through that line.
func typeMatches(st store.RecordStore, typeLabel, typ string) ([][]string, error) {
	isType := func(line string) bool {
		return util.HasPrefixFold(line, typeLabel) && util.ContainsFold(line, typ)
	}
	blocks, err := st.Filter(func(b block.Block) bool {
		return slices.ContainsFunc(b.Lines, isType)
	})
	if err != nil {
		return nil, err
	}

	var matches [][]string
	for _, b := range blocks {
		for i, line := range b.Lines {
			if isType(line) {
				matches = append(matches, b.Lines[:i+1])
			}
		}
	}
	return matches, nil
}

// renderMatches joins matches into verbatim text and a bannered message.
func renderMatches(matches [][]string, banner string) (text, message string) {
	var t, m strings.Builder
	for _, lines := range matches {
		chunk := joinLines(lines)
		t.WriteString(chunk)
		m.WriteString(banner)
		m.WriteString(chunk)
	}
	return t.String(), m.String()
}

// listAll returns the store verbatim, with the header banner in Message.
// Count is the number of blocks the scanner recognizes in it.
func listAll(st store.RecordStore, banner, missing string) (Lookup, error) {
	content, exists, err := st.ReadAll()
	if err != nil {
		return Lookup{}, err
	}
	if !exists {
		return notFound(missing), nil
	}

	count := 0
	err = st.Scan(func(block.Block) bool {
		count++
		return true
	})
	if err != nil {
		return Lookup{}, err
	}

	return Lookup{
		Found:   true,
		Count:   count,
		Text:    content,
		Message: banner + content,
	}, nil
}
