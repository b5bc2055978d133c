package document

import "strings"

// Lookup is the dictionary membership test used by [Annotate]. A nil Lookup
// (or one whose Contains always reports true) leaves every token flagged as
// known, which is the degraded no-highlighting mode used when the word list
// could not be loaded.
type Lookup interface {
	// Contains reports whether word is a known-correct word. The test is
	// exact string equality; implementations must not case-fold or strip
	// diacritics.
	Contains(word string) bool
}

// Annotate flags every word-candidate token whose trimmed text is absent from
// the dictionary. Separator tokens are never flagged. Token offsets are
// preserved so a UI click can recover exact document coordinates without
// re-scanning.
func Annotate(tokens []Token, dict Lookup) []Token {
	if dict == nil {
		return tokens
	}
	for i, tok := range tokens {
		if !tok.IsWord {
			continue
		}
		tokens[i].InDictionary = dict.Contains(strings.TrimSpace(tok.Text))
	}
	return tokens
}
