// Package dictionary provides the exact-match reference vocabulary used to
// flag unknown words and to propose bounded replacement suggestions.
//
// The index is loaded once per process from a newline-separated word list and
// is immutable afterwards, making it safe for concurrent use. A failed load
// degrades gracefully: an empty index reports every word as known so the
// editor renders no highlighting instead of failing the session.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Index is the loaded word list. The zero value is a degraded index that
// contains every word.
type Index struct {
	words map[string]struct{}

	// order preserves file insertion order so suggestion scans are stable
	// within a process run.
	order []string
}

// Load reads the newline-separated word list at path. Lines are trimmed and
// blank lines dropped. On open failure it logs a warning and returns a
// degraded index rather than an error, per the no-highlighting fallback.
func Load(path string) *Index {
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("dictionary: load failed — spell flagging disabled", "path", path, "err", err)
		return &Index{}
	}
	defer f.Close()

	idx, err := LoadFromReader(f)
	if err != nil {
		slog.Warn("dictionary: read failed — spell flagging disabled", "path", path, "err", err)
		return &Index{}
	}
	slog.Info("dictionary loaded", "path", path, "words", idx.Len())
	return idx
}

// LoadFromReader builds an Index from r. Useful in tests where word lists are
// constructed from string literals.
func LoadFromReader(r io.Reader) (*Index, error) {
	idx := &Index{words: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		if _, dup := idx.words[word]; dup {
			continue
		}
		idx.words[word] = struct{}{}
		idx.order = append(idx.order, word)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: scan word list: %w", err)
	}
	return idx, nil
}

// Contains reports whether word is in the vocabulary. The test is exact
// string equality — no case folding, no diacritic normalisation. A degraded
// index contains every word.
func (idx *Index) Contains(word string) bool {
	if idx.Degraded() {
		return true
	}
	_, ok := idx.words[word]
	return ok
}

// Degraded reports whether the index is empty (load failed or never ran) and
// therefore treats every word as known.
func (idx *Index) Degraded() bool {
	return idx == nil || len(idx.words) == 0
}

// Len returns the number of distinct words in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.words)
}
