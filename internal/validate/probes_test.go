package validate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactile-data/braillegen/internal/braille"
	"github.com/tactile-data/braillegen/internal/dataset"
)

func probeByName(t *testing.T, s Summary, name string) ProbeResult {
	t.Helper()
	for _, p := range s.Probes {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no probe named %q", name)
	return ProbeResult{}
}

func TestGeneratedDatasetValidatesClean(t *testing.T) {
	gen := dataset.NewGenerator(11)
	recs := gen.Stage3(500, dataset.DefaultTaskWeights())
	recs = append(recs, gen.Stage1(100)...)
	recs = append(recs, gen.Stage2(100, 0.5)...)

	s := Dataset(recs)
	assert.Equal(t, 1.0, s.Accuracy(), "generator output must validate perfectly")
	for _, p := range s.Probes {
		assert.Empty(t, p.Failures, "probe %s reported failures", p.Name)
	}
}

func TestEncodeProbesCatchCorruption(t *testing.T) {
	recs := []dataset.Record{
		{
			Instruction: dataset.InstructionEncodeG1,
			Input:       "cab",
			Output:      "⠉⠁⠉", // wrong final cell
			TaskType:    dataset.TaskG1Encode,
		},
		{
			Instruction: dataset.InstructionEncodeG2,
			Input:       "the",
			Output:      braille.EncodeGrade2("the"),
			TaskType:    dataset.TaskG2Encode,
		},
	}

	s := Dataset(recs)
	g1 := probeByName(t, s, "grade1_encode")
	assert.Equal(t, 0, g1.Correct)
	assert.Equal(t, 1, g1.Total)
	require.Len(t, g1.Failures, 1)
	assert.Equal(t, "⠉⠁⠃", g1.Failures[0].Expected)

	g2 := probeByName(t, s, "grade2_encode")
	assert.Equal(t, 1, g2.Correct)
}

func TestUntaggedRecordsDispatchOnInstruction(t *testing.T) {
	recs := []dataset.Record{
		{Instruction: dataset.InstructionStage1, Input: "cab", Output: "⠉⠁⠃"},
		{Instruction: dataset.InstructionStage2, Input: "the", Output: "⠮"},
	}

	s := Dataset(recs)
	assert.Equal(t, 1, probeByName(t, s, "grade1_encode").Total)
	assert.Equal(t, 1, probeByName(t, s, "grade2_encode").Total)
	assert.Equal(t, 1.0, s.Accuracy())
}

func TestCompressionProbe(t *testing.T) {
	good, _ := braille.CompressToCells("swarm intelligence", 2)
	recs := []dataset.Record{
		{
			Instruction: "compress",
			Input:       "swarm intelligence",
			Output:      good,
			TaskType:    dataset.TaskCompression,
			Metadata:    map[string]any{"n_cells": float64(2)},
		},
		{
			Instruction: "compress",
			Input:       "swarm intelligence",
			Output:      "⠎⠊⠊", // one cell too many
			TaskType:    dataset.TaskCompression,
			Metadata:    map[string]any{"n_cells": float64(2)},
		},
		{
			Instruction: "compress",
			Input:       "swarm intelligence",
			Output:      good,
			TaskType:    dataset.TaskCompression,
		},
	}

	p := probeByName(t, Dataset(recs), "compression")
	assert.Equal(t, 1, p.Correct)
	assert.Equal(t, 3, p.Total)
	require.Len(t, p.Failures, 2)
	assert.Contains(t, p.Failures[0].Reason, "exceeds target")
	assert.Contains(t, p.Failures[1].Reason, "missing n_cells")
}

func TestReasoningProbe(t *testing.T) {
	recs := []dataset.Record{
		{
			Instruction: dataset.InstructionInfer,
			Input:       "⠮",
			Output:      "The cell ⠮ represents the word 'the'.",
			TaskType:    dataset.TaskReasoning,
		},
		{
			Instruction: dataset.InstructionInfer,
			Input:       "⠮",
			Output:      "No idea.",
			TaskType:    dataset.TaskReasoning,
		},
	}

	p := probeByName(t, Dataset(recs), "reasoning")
	assert.Equal(t, 1, p.Correct)
	assert.Equal(t, 2, p.Total)
}

func TestWellFormedProbe(t *testing.T) {
	recs := []dataset.Record{
		{Instruction: "ok", Input: "x", Output: "y"},
		{Instruction: "", Input: "x", Output: "y"},
		{Instruction: "ok", Input: "x", Output: ""},
		{Instruction: "ok", Input: "x", Output: string([]byte{0xff, 0xfe})},
	}

	p := probeByName(t, Dataset(recs), "well_formed")
	assert.Equal(t, 1, p.Correct)
	assert.Equal(t, 4, p.Total)
}

func TestWriteResults(t *testing.T) {
	recs := dataset.NewGenerator(5).Stage3(50, dataset.DefaultTaskWeights())
	s := Dataset(recs)

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, WriteResults(path, s))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Summary
	require.NoError(t, json.Unmarshal(raw, &loaded))
	assert.Equal(t, len(s.Probes), len(loaded.Probes))
	assert.Equal(t, s.Accuracy(), loaded.Accuracy())
}
