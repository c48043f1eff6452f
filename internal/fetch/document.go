package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Document is the saved form of one fetched case: metadata plus the
// opinion body, ready for corpus sampling.
type Document struct {
	Metadata DocumentMetadata `json:"metadata"`
	Text     string           `json:"text"`
}

// DocumentMetadata describes the case a document came from.
type DocumentMetadata struct {
	Title        string   `json:"title"`
	Court        string   `json:"court"`
	Date         string   `json:"date"`
	Jurisdiction string   `json:"jurisdiction"`
	Concepts     []string `json:"concepts"`
	SourceURL    string   `json:"source_url"`
	Citation     string   `json:"citation,omitempty"`
}

// DocumentStore is the optional persistence hook; *db.DB satisfies it.
type DocumentStore interface {
	SaveDocument(id, title, court, dateFiled, jurisdiction, sourceURL string, concepts []string, body string) error
}

func buildDocument(baseURL string, cluster *Cluster, opinion *Opinion, hierarchy *ConceptHierarchy) Document {
	title := cluster.CaseName
	if title == "" {
		title = "Unknown Case"
	}
	court := cluster.Court.FullName
	if court == "" {
		court = "Unknown Court"
	}

	var text string
	if opinion != nil {
		text = opinion.PlainText
		if text == "" && opinion.HTML != "" {
			text = StripHTML(opinion.HTML)
		}
	}

	var citation string
	if len(cluster.Citations) > 0 {
		citation = cluster.Citations[0].Cite
	}

	return Document{
		Metadata: DocumentMetadata{
			Title:        title,
			Court:        court,
			Date:         cluster.DateFiled,
			Jurisdiction: "United States",
			Concepts:     hierarchy.Extract(text),
			SourceURL:    fmt.Sprintf("%s/clusters/%d/", baseURL, cluster.ID),
			Citation:     citation,
		},
		Text: text,
	}
}

// StripHTML returns the concatenated text content of an HTML fragment.
func StripHTML(fragment string) string {
	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

// FileName derives a filesystem-safe name for the document from its title
// and citation, capped at 100 characters.
func (d Document) FileName() string {
	name := strings.ToLower(d.Metadata.Title)
	name = strings.NewReplacer(" ", "_", ".", "", ",", "", "/", "_").Replace(name)
	if d.Metadata.Citation != "" {
		name = name + "_" + strings.ReplaceAll(d.Metadata.Citation, " ", "_")
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name + ".json"
}

// Save writes the document as indented JSON into dir.
func (d Document) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, d.FileName())

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ConceptHierarchy is a keyword catalogue used to tag documents with the
// legal concepts they mention.
type ConceptHierarchy struct {
	Concepts map[string]json.RawMessage `json:"concepts"`
}

// LoadConceptHierarchy reads a hierarchy file. A missing path yields an
// empty hierarchy rather than an error; concept tagging is best-effort.
func LoadConceptHierarchy(path string) (*ConceptHierarchy, error) {
	if path == "" {
		return &ConceptHierarchy{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConceptHierarchy{}, nil
		}
		return nil, fmt.Errorf("failed to read concept hierarchy: %w", err)
	}
	var h ConceptHierarchy
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse concept hierarchy: %w", err)
	}
	return &h, nil
}

// Extract returns the concept names mentioned in text, case-insensitively,
// in sorted order.
func (h *ConceptHierarchy) Extract(text string) []string {
	if h == nil || len(h.Concepts) == 0 || text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var found []string
	for concept := range h.Concepts {
		if strings.Contains(lower, strings.ToLower(concept)) {
			found = append(found, concept)
		}
	}
	sort.Strings(found)
	return found
}
