// Package validate checks generated datasets against the deterministic
// transcoder. Every probe re-derives the ground truth for a record class
// and scores the dataset's outputs against it.
//
// The probes only validate dataset files; exercising a trained model is
// out of scope here.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tactile-data/braillegen/internal/braille"
	"github.com/tactile-data/braillegen/internal/dataset"
)

// maxFailures caps the per-probe failure detail kept in a summary.
const maxFailures = 20

// Failure records one mismatching record.
type Failure struct {
	Index    int    `json:"index"`
	Input    string `json:"input"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got"`
	Reason   string `json:"reason,omitempty"`
}

// ProbeResult is the score of one probe over a dataset.
type ProbeResult struct {
	Name     string    `json:"name"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
	Failures []Failure `json:"failures,omitempty"`
}

// Accuracy returns the fraction of correct records; 1 for an empty probe.
func (p ProbeResult) Accuracy() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Correct) / float64(p.Total)
}

func (p *ProbeResult) pass() {
	p.Correct++
	p.Total++
}

func (p *ProbeResult) fail(f Failure) {
	p.Total++
	if len(p.Failures) < maxFailures {
		p.Failures = append(p.Failures, f)
	}
}

// Summary aggregates all probes over one dataset.
type Summary struct {
	Probes []ProbeResult `json:"probes"`
}

// Accuracy returns the overall fraction of correct records across probes.
func (s Summary) Accuracy() float64 {
	correct, total := 0, 0
	for _, p := range s.Probes {
		correct += p.Correct
		total += p.Total
	}
	if total == 0 {
		return 1
	}
	return float64(correct) / float64(total)
}

// Dataset runs every probe over recs.
func Dataset(recs []dataset.Record) Summary {
	wellFormed := ProbeResult{Name: "well_formed"}
	g1Encode := ProbeResult{Name: "grade1_encode"}
	g2Encode := ProbeResult{Name: "grade2_encode"}
	g1Decode := ProbeResult{Name: "grade1_decode"}
	compression := ProbeResult{Name: "compression"}
	discovery := ProbeResult{Name: "discovery"}
	reasoning := ProbeResult{Name: "reasoning"}

	for i, rec := range recs {
		probeWellFormed(&wellFormed, i, rec)

		switch {
		case rec.TaskType == dataset.TaskG1Encode || rec.Instruction == dataset.InstructionStage1:
			scoreExact(&g1Encode, i, rec, braille.EncodeGrade1(rec.Input))
		case rec.TaskType == dataset.TaskG2Encode || rec.Instruction == dataset.InstructionStage2:
			scoreExact(&g2Encode, i, rec, braille.EncodeGrade2(rec.Input))
		case rec.TaskType == dataset.TaskDecode:
			scoreExact(&g1Decode, i, rec, braille.DecodeGrade1(rec.Input))
		case rec.TaskType == dataset.TaskCompression:
			probeCompression(&compression, i, rec)
		case rec.TaskType == dataset.TaskDiscovery:
			probeDiscovery(&discovery, i, rec)
		case rec.TaskType == dataset.TaskReasoning:
			probeReasoning(&reasoning, i, rec)
		}
	}

	return Summary{Probes: []ProbeResult{
		wellFormed, g1Encode, g2Encode, g1Decode, compression, discovery, reasoning,
	}}
}

func scoreExact(p *ProbeResult, i int, rec dataset.Record, expected string) {
	if rec.Output == expected {
		p.pass()
		return
	}
	p.fail(Failure{Index: i, Input: rec.Input, Expected: expected, Got: rec.Output})
}

func probeWellFormed(p *ProbeResult, i int, rec dataset.Record) {
	switch {
	case rec.Instruction == "":
		p.fail(Failure{Index: i, Input: rec.Input, Reason: "empty instruction"})
	case rec.Output == "":
		p.fail(Failure{Index: i, Input: rec.Input, Reason: "empty output"})
	case !utf8.ValidString(rec.Output):
		p.fail(Failure{Index: i, Input: rec.Input, Reason: "output is not valid UTF-8"})
	default:
		p.pass()
	}
}

func probeCompression(p *ProbeResult, i int, rec dataset.Record) {
	n, ok := metadataInt(rec.Metadata, "n_cells")
	if !ok {
		p.fail(Failure{Index: i, Input: rec.Input, Got: rec.Output, Reason: "missing n_cells metadata"})
		return
	}
	if got := braille.CountCells(rec.Output); got > n {
		p.fail(Failure{
			Index: i, Input: rec.Input, Got: rec.Output,
			Reason: fmt.Sprintf("%d cells exceeds target %d", got, n),
		})
		return
	}
	expected, _ := braille.CompressToCells(rec.Input, n)
	scoreExact(p, i, rec, expected)
}

func probeDiscovery(p *ProbeResult, i int, rec dataset.Record) {
	cells, _, found := strings.Cut(rec.Output, " - ")
	if !found || cells == "" {
		p.fail(Failure{Index: i, Input: rec.Input, Got: rec.Output, Reason: "output is not 'cells - rationale'"})
		return
	}
	for _, r := range cells {
		if !braille.IsCell(r) {
			p.fail(Failure{Index: i, Input: rec.Input, Got: rec.Output, Reason: "proposed code contains non-braille characters"})
			return
		}
	}
	p.pass()
}

func probeReasoning(p *ProbeResult, i int, rec dataset.Record) {
	// Known contraction: the canonical word is mentioned. Not exclusive:
	// some compounds (e.g. "in"+"to") share cells with a whole-word
	// contraction, so a miss falls through to the containment check.
	if word, ok := braille.LookupContraction(rec.Input); ok && strings.Contains(strings.ToLower(rec.Output), word) {
		p.pass()
		return
	}
	// Compound or explanation input: the output must at least restate the
	// cells it claims to explain.
	if strings.Contains(rec.Output, rec.Input) {
		p.pass()
		return
	}
	p.fail(Failure{Index: i, Input: rec.Input, Got: rec.Output, Reason: "output does not reference the input cells"})
}

// metadataInt reads an integer metadata field, tolerating the float64 that
// JSON round-trips produce.
func metadataInt(m map[string]any, key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// WriteResults saves a summary as indented JSON, braille kept literal.
func WriteResults(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
