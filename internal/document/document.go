// Package document provides the text model for the narration editor: an
// offset-tagged tokenizer, dictionary annotation, splice-style edits, and a
// caret token decoupled from content.
//
// All offsets are codepoint (rune) indices into the current text. They stay
// valid only until the next edit; after a replacement the text must be
// re-tokenised rather than patching offsets arithmetically, because
// multi-codepoint replacements make manual shifting error-prone.
package document

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Token is a contiguous span of the document, either a word candidate or a
// whitespace separator. Concatenating all token texts in order reproduces the
// source text exactly.
type Token struct {
	// Text is the exact span text, including separator whitespace.
	Text string

	// Start and End are codepoint offsets into the source text. End is
	// exclusive.
	Start int
	End   int

	// IsWord reports whether this span is a word candidate (a non-separator
	// span with non-empty trimmed text).
	IsWord bool

	// InDictionary is set by [Annotate]. For separator tokens it is always
	// true.
	InDictionary bool
}

// Tokenize splits text into an ordered sequence of offset-tagged tokens,
// alternating content and whitespace-run separator spans. Identical input
// always yields the identical token list, independent of locale or script
// direction; right-to-left text is emitted in storage order with no
// reordering.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	tokens := make([]Token, 0, len(text)/4+1)
	offset := 0 // codepoint offset of the span start
	byteStart := 0
	runeStart := 0
	inSpace := false

	flush := func(byteEnd, runeEnd int) {
		if byteEnd == byteStart {
			return
		}
		span := text[byteStart:byteEnd]
		tokens = append(tokens, Token{
			Text:         span,
			Start:        runeStart,
			End:          runeEnd,
			IsWord:       !inSpace,
			InDictionary: true,
		})
		byteStart = byteEnd
		runeStart = runeEnd
	}

	i := 0
	first := true
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		space := unicode.IsSpace(r)
		if first {
			inSpace = space
			first = false
		}
		if space != inSpace {
			flush(i, offset)
			inSpace = space
		}
		i += size
		offset++
	}
	flush(len(text), offset)

	return tokens
}

// Replace splices replacement into text between the codepoint offsets start
// and end, producing text[:start] + replacement + text[end:]. It returns an
// error when the offsets do not satisfy 0 <= start <= end <= len(text) in
// codepoints.
//
// Offsets at or after end in the old text are not valid in the result;
// callers must re-tokenise instead of shifting them.
func Replace(text string, start, end int, replacement string) (string, error) {
	total := utf8.RuneCountInString(text)
	if start < 0 || start > end || end > total {
		return "", fmt.Errorf("document: replace offsets [%d, %d) out of range for text of %d codepoints", start, end, total)
	}

	startByte := runeToByte(text, start)
	endByte := runeToByte(text, end)
	return text[:startByte] + replacement + text[endByte:], nil
}

// runeToByte converts a codepoint offset into a byte offset. The caller
// guarantees n is within [0, rune count].
func runeToByte(text string, n int) int {
	i := 0
	for pos := range text {
		if i == n {
			return pos
		}
		i++
	}
	return len(text)
}
