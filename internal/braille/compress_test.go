package braille

import (
	"strings"
	"testing"
)

func TestCompressToCells(t *testing.T) {
	tests := []struct {
		name      string
		phrase    string
		n         int
		wantCells string
	}{
		{"acronym from initials", "artificial intelligence", 2, "⠁⠊"},
		{"three initials", "formation control protocol", 3, "⠋⠉⠏"},
		{"padded from longest word", "swarm coordination", 3, "⠎⠉⠕"},
		{"single word padded", "robot", 3, "⠗⠕⠃"},
		{"digits skipped", "x9 z4", 2, "⠭⠵"},
		{"insufficient material", "a b", 4, "⠁⠃"},
		{"truncates to n", "one two three four five", 2, "⠕⠞"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cells, rationale := CompressToCells(tc.phrase, tc.n)
			if cells != tc.wantCells {
				t.Errorf("CompressToCells(%q, %d) = %q, want %q", tc.phrase, tc.n, cells, tc.wantCells)
			}
			if CountCells(cells) > tc.n {
				t.Errorf("got %d cells, exceeds target %d", CountCells(cells), tc.n)
			}
			if rationale == "" {
				t.Error("expected a non-empty rationale")
			}
		})
	}
}

func TestCompressToCellsRationale(t *testing.T) {
	_, rationale := CompressToCells("artificial intelligence", 2)
	want := "Uses letters: a, i from words: artificial, intelligence"
	if rationale != want {
		t.Errorf("rationale = %q, want %q", rationale, want)
	}

	_, padded := CompressToCells("swarm coordination", 3)
	if !strings.Contains(padded, `padded from longest word "coordination"`) {
		t.Errorf("rationale %q does not mention the padding source", padded)
	}
}

func TestCompressToCellsInvalidTarget(t *testing.T) {
	for _, n := range []int{0, -1} {
		cells, rationale := CompressToCells("anything", n)
		if cells != "" || rationale != "" {
			t.Errorf("CompressToCells(_, %d) = (%q, %q), want empty", n, cells, rationale)
		}
	}
}

func TestCompressToCellsHugeTarget(t *testing.T) {
	// The target only caps the output; a huge n must degrade to "all the
	// letters the phrase has", never panic or allocate towards n.
	cells, rationale := CompressToCells("test phrase", 1<<62)
	if cells != "⠞⠏⠓⠗⠁⠎⠑" {
		t.Errorf("cells = %q, want every available letter", cells)
	}
	if !strings.Contains(rationale, `padded from longest word "phrase"`) {
		t.Errorf("rationale %q does not mention the padding source", rationale)
	}
}

func TestCompressToCellsDeterministic(t *testing.T) {
	first, _ := CompressToCells("distributed sensor network", 3)
	for i := 0; i < 10; i++ {
		got, _ := CompressToCells("distributed sensor network", 3)
		if got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}
