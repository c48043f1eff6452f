package braille

import (
	"fmt"
	"strings"
	"unicode"
)

// CompressToCells derives an acronym-style code of at most n cells from a
// multi-word phrase. Letter selection takes the first alphabetic character
// of each word in order; if that yields fewer than n letters the remainder
// is pulled from the longest word in the phrase, skipping non-alphabetic
// characters, until n letters are collected or the phrase is exhausted.
// The selected letters are Grade-1 encoded.
//
// The returned rationale names the letters used and their source words. It
// is descriptive metadata only; no downstream computation depends on it.
// A phrase with insufficient alphabetic material yields a shorter sequence
// rather than an error.
func CompressToCells(phrase string, n int) (string, string) {
	if n < 1 {
		return "", ""
	}

	words := strings.Fields(strings.ToLower(phrase))
	// The phrase, not n, bounds the real output; clamp the preallocation
	// so a caller-supplied huge n cannot break the allocator.
	prealloc := min(n, 64)
	letters := make([]rune, 0, prealloc)
	sources := make([]string, 0, prealloc)
	for _, w := range words {
		if len(letters) == n {
			break
		}
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters = append(letters, r)
				sources = append(sources, w)
				break
			}
		}
	}

	// Pad from the single longest word, past its initial letter.
	var longest string
	if len(letters) < n {
		for _, w := range words {
			if len(w) > len(longest) {
				longest = w
			}
		}
		first := true
		for _, r := range longest {
			if !unicode.IsLetter(r) {
				continue
			}
			if first {
				first = false
				continue
			}
			if len(letters) == n {
				break
			}
			letters = append(letters, r)
		}
	}

	var cells strings.Builder
	letterList := make([]string, len(letters))
	for i, l := range letters {
		letterList[i] = string(l)
		if cell, ok := grade1[l]; ok {
			cells.WriteRune(cell)
		} else {
			cells.WriteRune(BlankCell)
		}
	}

	rationale := fmt.Sprintf("Uses letters: %s from words: %s",
		strings.Join(letterList, ", "), strings.Join(sources, ", "))
	if len(letters) > len(sources) {
		rationale += fmt.Sprintf("; padded from longest word %q", longest)
	}
	return cells.String(), rationale
}
