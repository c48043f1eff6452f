package braille

import "strings"

// EncodeGrade2 transcodes text using Grade-2 contractions. The input is
// lower-cased and split on single spaces; each word resolves independently
// and the results are joined with the blank separator cell. Splitting on
// the literal space keeps empty tokens from repeated spaces, which resolve
// to empty segments framed by separator cells.
func EncodeGrade2(text string) string {
	words := strings.Split(strings.ToLower(text), " ")
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = resolveWord(w)
	}
	return strings.Join(parts, string(BlankCell))
}

// resolveWord applies the Grade-2 precedence chain and stops at the first
// match. Whole-word tables are consulted before any sub-word pattern so a
// word like "this" yields its strong contraction rather than a "th"+"is"
// decomposition.
func resolveWord(word string) string {
	if cells, ok := strongContractions[word]; ok {
		return cells
	}
	if cells, ok := wordsigns[word]; ok {
		return cells
	}
	if cells, ok := lowerWordsigns[word]; ok {
		return cells
	}

	// Groupsign substitution on the raw lowercase word, longest pattern
	// first so the two-letter clusters cannot break up an "ing" or "ble"
	// match. Substituted cells are outside the input alphabet, so later
	// patterns cannot match across them.
	contracted := word
	for _, pattern := range groupsignOrder {
		contracted = strings.ReplaceAll(contracted, pattern, groupsigns[pattern])
	}

	// Whatever is not already a Braille cell goes through the Grade-1
	// table one character at a time, with its usual blank-cell fallback.
	var b strings.Builder
	b.Grow(len(contracted))
	for _, r := range contracted {
		switch {
		case IsCell(r):
			b.WriteRune(r)
		default:
			if cell, ok := grade1[r]; ok {
				b.WriteRune(cell)
			} else {
				b.WriteRune(BlankCell)
			}
		}
	}
	return b.String()
}
