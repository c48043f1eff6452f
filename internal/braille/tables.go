// Package braille implements a rule-based transcoder between English text
// and six-dot Braille cell sequences.
//
// Two grades are supported: Grade-1 is a letter-for-letter mapping (one
// cell per input character) and Grade-2 substitutes whole words and common
// letter clusters with single reserved cells, following a deliberate subset
// of Unified English Braille. All mapping tables are constructed once at
// package init and never mutated, so every function in this package is safe
// for concurrent use.
package braille

import "sort"

// The Unicode Braille Patterns block. A cell is one code point in this
// range and is treated as an opaque atomic symbol throughout.
const (
	blockStart = 0x2800
	blockEnd   = 0x28FF
)

// BlankCell is the empty dot pattern. It doubles as the word separator in
// Grade-2 output and as the fallback for unmapped Grade-1 characters.
const BlankCell = '⠀'

// IsCell reports whether r falls inside the Braille Patterns block.
func IsCell(r rune) bool {
	return r >= blockStart && r <= blockEnd
}

// CountCells returns the number of Braille cells in s, ignoring any
// non-Braille characters.
func CountCells(s string) int {
	n := 0
	for _, r := range s {
		if IsCell(r) {
			n++
		}
	}
	return n
}

// grade1Entries is the Grade-1 table in declaration order. Order matters:
// the reverse table is built by walking this slice front to back with
// last-entry-wins semantics, so the digits below deliberately shadow the
// punctuation that shares their lower-cell dot patterns (e.g. ⠂ decodes as
// "1", not ","). Keep new entries at the end.
var grade1Entries = []struct {
	ch   rune
	cell rune
}{
	{'a', '⠁'}, {'b', '⠃'}, {'c', '⠉'}, {'d', '⠙'}, {'e', '⠑'},
	{'f', '⠋'}, {'g', '⠛'}, {'h', '⠓'}, {'i', '⠊'}, {'j', '⠚'},
	{'k', '⠅'}, {'l', '⠇'}, {'m', '⠍'}, {'n', '⠝'}, {'o', '⠕'},
	{'p', '⠏'}, {'q', '⠟'}, {'r', '⠗'}, {'s', '⠎'}, {'t', '⠞'},
	{'u', '⠥'}, {'v', '⠧'}, {'w', '⠺'}, {'x', '⠭'}, {'y', '⠽'},
	{'z', '⠵'}, {' ', '⠀'}, {'.', '⠲'}, {',', '⠂'}, {'!', '⠖'},
	{'?', '⠦'}, {'-', '⠤'}, {'\'', '⠄'}, {':', '⠒'}, {';', '⠆'},
	{'0', '⠴'}, {'1', '⠂'}, {'2', '⠆'}, {'3', '⠒'}, {'4', '⠲'},
	{'5', '⠢'}, {'6', '⠖'}, {'7', '⠶'}, {'8', '⠦'}, {'9', '⠔'},
}

// strongContractions maps whole common words to a single cell. Matched only
// when the entire word equals the key.
var strongContractions = map[string]string{
	"the": "⠮", "and": "⠯", "for": "⠿", "of": "⠷", "with": "⠾",
	"child": "⠡", "shall": "⠩", "this": "⠹", "which": "⠱", "out": "⠳",
	"still": "⠌",
}

// wordsigns are alphabetic wordsigns: single letter cells that stand for
// whole words when the word stands alone.
var wordsigns = map[string]string{
	"but": "⠃", "can": "⠉", "do": "⠙", "every": "⠑", "from": "⠋",
	"go": "⠛", "have": "⠓", "just": "⠚", "knowledge": "⠅", "like": "⠇",
	"more": "⠍", "not": "⠝", "people": "⠏", "quite": "⠟", "rather": "⠗",
	"so": "⠎", "that": "⠞", "us": "⠥", "very": "⠧", "will": "⠺",
	"it": "⠭", "you": "⠽", "as": "⠵",
}

// lowerWordsigns use the lower dot patterns (dots 2-3-5-6). Values may be
// one or two cells.
var lowerWordsigns = map[string]string{
	"be": "⠆", "enough": "⠢", "were": "⠶", "his": "⠦", "in": "⠔",
	"was": "⠴", "to": "⠖", "into": "⠔⠖", "by": "⠃⠽",
}

// groupsigns are letter clusters substituted inside words that did not
// match a whole-word table. Keys here are kept disjoint from the other
// Grade-2 tables.
var groupsigns = map[string]string{
	"ch": "⠡", "gh": "⠣", "sh": "⠩", "th": "⠹", "wh": "⠱",
	"ed": "⠫", "er": "⠻", "ou": "⠳", "ow": "⠪", "st": "⠌",
	"ar": "⠜", "ing": "⠬", "ble": "⠼",
}

// cellExplanations holds the human-readable descriptions served by the
// reasoning task and the explain endpoint.
var cellExplanations = map[rune]string{
	'⠮': "The cell ⠮ represents 'the' - the most common English word, compressed to one cell.",
	'⠯': "The cell ⠯ represents 'and' - a conjunction compressed for efficiency.",
	'⠿': "The cell ⠿ represents 'for' - a preposition in Grade-2 UEB.",
	'⠷': "The cell ⠷ represents 'of' - indicating possession or relation.",
	'⠾': "The cell ⠾ represents 'with' - denoting accompaniment.",
	'⠹': "The cell ⠹ represents 'this' as a word, or 'th' within words.",
	'⠡': "The cell ⠡ represents 'child' as a word, or 'ch' within words.",
	'⠩': "The cell ⠩ represents 'shall' as a word, or 'sh' within words.",
	'⠱': "The cell ⠱ represents 'which' as a word, or 'wh' within words.",
	'⠬': "The cell ⠬ represents the 'ing' suffix - very common in English.",
	'⠻': "The cell ⠻ represents the 'er' pattern - agent nouns and comparatives.",
	'⠌': "The cell ⠌ represents 'still' as a word, or 'st' within words.",
}

// Derived tables, built once in init and read-only afterwards.
var (
	grade1        map[rune]rune
	grade1Reverse map[rune]rune

	// contractionReverse maps a cell sequence back to one canonical word
	// across all whole-word tables. Where two words share a value the
	// later table in (strong, wordsign, lower) declaration order wins;
	// a bare cell sequence carries no signal to recover the other word.
	contractionReverse map[string]string

	// groupsignOrder lists groupsign keys longest first so a two-letter
	// key can never consume part of a longer match ("ing" and "ble" are
	// substituted before any of the two-letter clusters). Equal-length
	// keys are ordered lexicographically; the tie-break is arbitrary but
	// must be deterministic.
	groupsignOrder []string
)

func init() {
	grade1 = make(map[rune]rune, len(grade1Entries))
	grade1Reverse = make(map[rune]rune, len(grade1Entries))
	for _, e := range grade1Entries {
		grade1[e.ch] = e.cell
		grade1Reverse[e.cell] = e.ch
	}

	contractionReverse = make(map[string]string)
	for _, table := range []map[string]string{strongContractions, wordsigns, lowerWordsigns} {
		words := make([]string, 0, len(table))
		for w := range table {
			words = append(words, w)
		}
		sort.Strings(words)
		for _, w := range words {
			contractionReverse[table[w]] = w
		}
	}

	groupsignOrder = make([]string, 0, len(groupsigns))
	for k := range groupsigns {
		groupsignOrder = append(groupsignOrder, k)
	}
	sort.Slice(groupsignOrder, func(i, j int) bool {
		if len(groupsignOrder[i]) != len(groupsignOrder[j]) {
			return len(groupsignOrder[i]) > len(groupsignOrder[j])
		}
		return groupsignOrder[i] < groupsignOrder[j]
	})
}

// Contraction is one whole-word Grade-2 mapping.
type Contraction struct {
	Word  string
	Cells string
}

// Contractions returns every whole-word Grade-2 mapping (strong
// contractions, wordsigns and lower wordsigns) sorted by word. The slice is
// freshly allocated; callers may not reach the underlying tables.
func Contractions() []Contraction {
	out := make([]Contraction, 0, len(strongContractions)+len(wordsigns)+len(lowerWordsigns))
	for _, table := range []map[string]string{strongContractions, wordsigns, lowerWordsigns} {
		for w, c := range table {
			out = append(out, Contraction{Word: w, Cells: c})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// StrongContractions returns the strong contraction table sorted by word.
func StrongContractions() []Contraction {
	out := make([]Contraction, 0, len(strongContractions))
	for w, c := range strongContractions {
		out = append(out, Contraction{Word: w, Cells: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// LookupContraction returns the canonical word for a whole-word contraction
// cell sequence. Where multiple words historically shared a cell value the
// returned word is a single documented choice, not a disambiguation.
func LookupContraction(cells string) (string, bool) {
	w, ok := contractionReverse[cells]
	return w, ok
}

// ExplainCell returns the explanation text for a single contraction cell,
// if one is defined.
func ExplainCell(cell rune) (string, bool) {
	s, ok := cellExplanations[cell]
	return s, ok
}

// ExplainedCells returns the cells that have explanation texts, sorted by
// code point.
func ExplainedCells() []rune {
	out := make([]rune, 0, len(cellExplanations))
	for c := range cellExplanations {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
