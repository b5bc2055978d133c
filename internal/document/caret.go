package document

import "unicode/utf8"

// Caret is a selection token decoupled from the rendered content. Start and
// End are codepoint offsets; a collapsed selection has Start == End.
//
// The contract for interactive editors: a re-render caused purely by
// re-annotation (no text change) restores the caret the user holds, while a
// re-render caused by an accepted replacement resets the caret to the end of
// the editable region, since the edit invalidates the prior caret context.
type Caret struct {
	Start int
	End   int
}

// Collapsed reports whether the caret is a plain cursor with no selection.
func (c Caret) Collapsed() bool { return c.Start == c.End }

// EndOfText returns the caret position after a content-changing edit: a
// collapsed cursor at the last codepoint of text.
func EndOfText(text string) Caret {
	n := utf8.RuneCountInString(text)
	return Caret{Start: n, End: n}
}

// Clamp bounds the caret to the codepoint length of text. Used when a caret
// saved before a structural-only re-render is restored against content whose
// length has not changed; out-of-range offsets collapse to the text end.
func (c Caret) Clamp(text string) Caret {
	n := utf8.RuneCountInString(text)
	if c.Start > n {
		c.Start = n
	}
	if c.End > n {
		c.End = n
	}
	if c.Start < 0 {
		c.Start = 0
	}
	if c.End < c.Start {
		c.End = c.Start
	}
	return c
}
