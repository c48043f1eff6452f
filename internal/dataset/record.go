// Package dataset generates and serialises instruction-tuning records for
// the Braille transcoder.
//
// The record schema and the line-delimited JSON layout are the external
// contract consumed by downstream training pipelines: one UTF-8 JSON object
// per line, with Braille code points emitted literally rather than
// ASCII-escaped.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Record is one training example. Instruction, Input and Output are always
// present; TaskType and Metadata are optional tags for stage-3 datasets.
type Record struct {
	Instruction string         `json:"instruction"`
	Input       string         `json:"input"`
	Output      string         `json:"output"`
	TaskType    string         `json:"task_type,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Writer streams records to a JSONL file. Paths ending in .gz are
// gzip-compressed transparently.
type Writer struct {
	f   *os.File
	gz  *gzip.Writer
	bw  *bufio.Writer
	enc *json.Encoder
}

// NewWriter creates the output file, truncating any existing content.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := &Writer{f: f}
	var out io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		w.gz = gzip.NewWriter(f)
		out = w.gz
	}
	w.bw = bufio.NewWriter(out)
	w.enc = json.NewEncoder(w.bw)
	// Keep braille and everything else literal in the output.
	w.enc.SetEscapeHTML(false)
	return w, nil
}

// Write appends one record as a single JSON line.
func (w *Writer) Write(rec Record) error {
	return w.enc.Encode(rec)
}

// WriteAll appends every record in order.
func (w *Writer) WriteAll(recs []Record) error {
	for i, rec := range recs {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Close flushes buffers and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.f.Close()
		return err
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			w.f.Close()
			return err
		}
	}
	return w.f.Close()
}

// WriteFile writes recs to path as JSONL in one shot.
func WriteFile(path string, recs []Record) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteAll(recs); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadFile loads a JSONL dataset, decompressing .gz paths. Blank lines are
// skipped; a malformed line fails the whole read with its line number.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream in %s: %w", path, err)
		}
		defer gz.Close()
		in = gz
	}

	var recs []Record
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return recs, nil
}
