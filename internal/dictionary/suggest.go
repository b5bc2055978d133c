package dictionary

import "unicode/utf8"

// maxSuggestions bounds the size of every suggestion list.
const maxSuggestions = 5

// maxLengthDelta is the allowed codepoint-length difference between a query
// and a candidate.
const maxLengthDelta = 2

// Suggest proposes up to five dictionary words as replacements for word. The
// scan walks the vocabulary in insertion order and keeps entries that share
// the query's first codepoint and whose codepoint length differs by at most
// two. This is a deliberate O(|dictionary|) heuristic with no edit-distance
// or phonetic scoring; ties are broken only by encounter order. An empty
// result is valid and renders as "no suggestions".
//
// Results are computed fresh on every call, never cached.
func (idx *Index) Suggest(word string) []string {
	if idx.Degraded() || word == "" {
		return nil
	}

	first, _ := utf8.DecodeRuneInString(word)
	wordLen := utf8.RuneCountInString(word)

	var out []string
	for _, entry := range idx.order {
		entryFirst, _ := utf8.DecodeRuneInString(entry)
		if entryFirst != first {
			continue
		}
		delta := utf8.RuneCountInString(entry) - wordLen
		if delta < -maxLengthDelta || delta > maxLengthDelta {
			continue
		}
		out = append(out, entry)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
