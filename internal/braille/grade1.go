package braille

import (
	"strings"
	"unicode"
)

// EncodeGrade1 transcodes text letter by letter: exactly one cell per input
// character, case-folded. Characters outside the Grade-1 table are
// substituted with the blank cell rather than failing, so the output length
// always equals the input length in runes.
func EncodeGrade1(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if cell, ok := grade1[unicode.ToLower(r)]; ok {
			b.WriteRune(cell)
		} else {
			b.WriteRune(BlankCell)
		}
	}
	return b.String()
}

// DecodeGrade1 is the reverse lookup over the Grade-1 table. Cells with no
// mapping decode to a space. Decoding only inverts EncodeGrade1 for text
// restricted to the supported alphabet: unsupported input characters were
// already collapsed to the blank cell on encode, and a handful of cells are
// shared between punctuation and digits (the digit wins, see the table
// declaration).
func DecodeGrade1(cells string) string {
	var b strings.Builder
	b.Grow(len(cells))
	for _, r := range cells {
		if ch, ok := grade1Reverse[r]; ok {
			b.WriteRune(ch)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
