package fetch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "no markup here", "no markup here"},
		{"simple tags", "<p>hello <b>world</b></p>", "hello world"},
		{"nested markup", "<div><span>a</span><span>b</span></div>", "ab"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripHTML(tc.in); got != tc.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	doc := Document{Metadata: DocumentMetadata{
		Title:    "Smith v. Jones",
		Citation: "601 U.S. 1",
	}}
	if got, want := doc.FileName(), "smith_v_jones_601_U.S._1.json"; got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}

	long := Document{Metadata: DocumentMetadata{Title: strings.Repeat("x", 300)}}
	if got := long.FileName(); len(got) != 100+len(".json") {
		t.Errorf("long title produced %d characters, want capped at 100 plus extension", len(got))
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	want := Document{
		Metadata: DocumentMetadata{
			Title:        "Smith v. Jones",
			Court:        "Supreme Court of the United States",
			Date:         "2024-01-15",
			Jurisdiction: "United States",
			Concepts:     []string{"due process"},
			SourceURL:    "https://api.test/v4/clusters/101/",
			Citation:     "601 U.S. 1",
		},
		Text: "The judgment is affirmed.",
	}

	path, err := want.Save(dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("saved outside the target directory: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved document: %v", err)
	}
	var got Document
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("parsing saved document: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document changed through the file (-want +got):\n%s", diff)
	}
}

func TestLoadConceptHierarchy(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		h, err := LoadConceptHierarchy("")
		if err != nil {
			t.Fatalf("LoadConceptHierarchy: %v", err)
		}
		if got := h.Extract("anything"); got != nil {
			t.Errorf("empty hierarchy extracted %v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		h, err := LoadConceptHierarchy(filepath.Join(t.TempDir(), "absent.json"))
		if err != nil {
			t.Fatalf("LoadConceptHierarchy: %v", err)
		}
		if h == nil {
			t.Fatal("expected an empty hierarchy")
		}
	})

	t.Run("loaded file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "concepts.json")
		content := `{"concepts": {"due process": {}, "habeas corpus": {}, "equal protection": {}}}`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		h, err := LoadConceptHierarchy(path)
		if err != nil {
			t.Fatalf("LoadConceptHierarchy: %v", err)
		}

		got := h.Extract("The Due Process Clause requires habeas corpus review.")
		want := []string{"due process", "habeas corpus"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Extract mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "concepts.json")
		if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if _, err := LoadConceptHierarchy(path); err == nil {
			t.Error("expected an error for malformed JSON")
		}
	})
}
