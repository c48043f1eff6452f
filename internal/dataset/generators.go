package dataset

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tactile-data/braillegen/internal/braille"
	"github.com/tactile-data/braillegen/internal/timeutil"
)

// Task type tags carried in the task_type record field.
const (
	TaskG1Encode    = "g1_encode"
	TaskG2Encode    = "g2_encode"
	TaskDecode      = "decode"
	TaskDiscovery   = "contraction_discovery"
	TaskCompression = "compression_challenge"
	TaskReasoning   = "braille_reasoning"
	TaskSwarm       = "swarm_negotiation"
)

// Instruction texts. These are part of the external record contract and
// must stay byte-stable across runs.
const (
	InstructionEncodeG1 = "Encode the following English text to Grade-1 Braille."
	InstructionEncodeG2 = "Encode the following English text to Grade-2 Braille using contractions."
	InstructionDecode   = "Decode the following Braille to English."
	InstructionStage1   = "Translate the following English text into Grade-1 Braille."
	InstructionStage2   = "Translate the following English text into Grade-2 Braille using contractions."
	InstructionInfer    = "Identify the English word represented by this Grade-2 contraction."
)

// TaskWeights is the stage-3 task distribution. Weights should sum to 1;
// rounding remainders are assigned to the round-trip task.
type TaskWeights struct {
	RoundTrip   float64
	Discovery   float64
	Compression float64
	Reasoning   float64
	Swarm       float64
}

// DefaultTaskWeights mirrors the distribution the training recipe was
// tuned against.
func DefaultTaskWeights() TaskWeights {
	return TaskWeights{
		RoundTrip:   0.40,
		Discovery:   0.25,
		Compression: 0.20,
		Reasoning:   0.10,
		Swarm:       0.05,
	}
}

// Run identifies one generation run for provenance tracking in the store.
type Run struct {
	ID        string    `json:"id"`
	Stage     int       `json:"stage"`
	Seed      int64     `json:"seed"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRun allocates a run descriptor with a fresh id.
func NewRun(clock timeutil.Clock, stage int, seed int64, count int) Run {
	return Run{
		ID:        uuid.NewString(),
		Stage:     stage,
		Seed:      seed,
		Count:     count,
		CreatedAt: clock.Now().UTC(),
	}
}

// Generator produces records from a seeded random source. Output is fully
// deterministic for a given seed; the transcoder itself is pure, so all
// randomness lives here.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

const letterAlphabet = "abcdefghijklmnopqrstuvwxyz "

func (g *Generator) randomLetters() string {
	n := 5 + g.rng.Intn(11)
	b := make([]byte, n)
	for i := range b {
		b[i] = letterAlphabet[g.rng.Intn(len(letterAlphabet))]
	}
	return string(b)
}

func (g *Generator) stage1Phrase() string {
	// Mostly seed phrases, with a slice of random letter noise so the
	// model sees the whole alphabet.
	if g.rng.Float64() > 0.7 {
		return g.randomLetters()
	}
	return stage1Phrases[g.rng.Intn(len(stage1Phrases))]
}

// RoundTrip produces an English↔Braille translation record: half encode
// (Grade-1 or Grade-2), half Grade-1 decode. Grade-2 decode is deliberately
// never generated; no consumer exercises it.
func (g *Generator) RoundTrip() Record {
	phrase := englishPhrases[g.rng.Intn(len(englishPhrases))]

	if g.rng.Float64() < 0.5 {
		if g.rng.Float64() < 0.4 {
			return Record{
				Instruction: InstructionEncodeG1,
				Input:       phrase,
				Output:      braille.EncodeGrade1(phrase),
				TaskType:    TaskG1Encode,
			}
		}
		return Record{
			Instruction: InstructionEncodeG2,
			Input:       phrase,
			Output:      braille.EncodeGrade2(phrase),
			TaskType:    TaskG2Encode,
		}
	}

	cells := braille.EncodeGrade1(phrase)
	return Record{
		Instruction: InstructionDecode,
		Input:       cells,
		Output:      braille.DecodeGrade1(cells),
		TaskType:    TaskDecode,
	}
}

// Discovery produces a "propose a new contraction" record for a domain
// concept, with the deterministic compression as ground truth.
func (g *Generator) Discovery() Record {
	concept := domainConcepts[g.rng.Intn(len(domainConcepts))]
	n := 2 + g.rng.Intn(3)
	cells, rationale := braille.CompressToCells(concept, n)

	templates := []string{
		fmt.Sprintf("Propose a %d-cell Grade-3 contraction for: %s", n, concept),
		fmt.Sprintf("Create a compressed Braille symbol for '%s' using %d cells.", concept, n),
		fmt.Sprintf("Design a shorthand notation for '%s' in %d Braille cells.", concept, n),
	}

	return Record{
		Instruction: templates[g.rng.Intn(len(templates))],
		Input:       concept,
		Output:      fmt.Sprintf("%s - %s", cells, rationale),
		TaskType:    TaskDiscovery,
	}
}

// Compression produces an exact-cell-count compression challenge. The
// rationale and target cell count travel in metadata, not in the output.
func (g *Generator) Compression() Record {
	concept := domainConcepts[g.rng.Intn(len(domainConcepts))]
	n := 2 + g.rng.Intn(2)
	cells, rationale := braille.CompressToCells(concept, n)

	return Record{
		Instruction: fmt.Sprintf("Compress the following concept into exactly %d Braille cells.", n),
		Input:       concept,
		Output:      cells,
		TaskType:    TaskCompression,
		Metadata: map[string]any{
			"reasoning": rationale,
			"n_cells":   n,
		},
	}
}

// Reasoning produces one of three explanation-style records: explain a
// known cell, combine two contractions, or infer the word behind a strong
// contraction. All of these only ever reverse-look-up single known cells.
func (g *Generator) Reasoning() Record {
	switch g.rng.Intn(3) {
	case 0: // explain
		cells := braille.ExplainedCells()
		cell := cells[g.rng.Intn(len(cells))]
		explanation, _ := braille.ExplainCell(cell)
		return Record{
			Instruction: fmt.Sprintf("Explain what the Braille cell %c represents.", cell),
			Input:       string(cell),
			Output:      explanation,
			TaskType:    TaskReasoning,
		}

	case 1: // combine
		all := braille.Contractions()
		i := g.rng.Intn(len(all))
		j := g.rng.Intn(len(all) - 1)
		if j >= i {
			j++
		}
		first, second := all[i], all[j]
		combined := first.Cells + second.Cells
		return Record{
			Instruction: fmt.Sprintf("Given %s means '%s' and %s means '%s', what does %s represent?",
				first.Cells, first.Word, second.Cells, second.Word, combined),
			Input:    combined,
			Output:   fmt.Sprintf("The sequence %s represents '%s %s' - a compound of the two contractions.", combined, first.Word, second.Word),
			TaskType: TaskReasoning,
		}

	default: // infer
		strong := braille.StrongContractions()
		c := strong[g.rng.Intn(len(strong))]
		return Record{
			Instruction: InstructionInfer,
			Input:       c.Cells,
			Output:      fmt.Sprintf("The cell %s represents the word '%s'.", c.Cells, c.Word),
			TaskType:    TaskReasoning,
		}
	}
}

// Swarm picks one of the fixed multi-agent negotiation scenarios.
func (g *Generator) Swarm() Record {
	return swarmScenarios[g.rng.Intn(len(swarmScenarios))]
}

// Stage1 generates the basic alphabet corpus: Grade-1 translations of seed
// phrases and random letter strings.
func (g *Generator) Stage1(count int) []Record {
	recs := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		phrase := g.stage1Phrase()
		recs = append(recs, Record{
			Instruction: InstructionStage1,
			Input:       phrase,
			Output:      braille.EncodeGrade1(phrase),
		})
	}
	return recs
}

// Stage2 generates the contraction corpus, blending in g1Ratio of Grade-1
// examples to prevent catastrophic forgetting of the stage-1 material.
func (g *Generator) Stage2(count int, g1Ratio float64) []Record {
	recs := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		if g.rng.Float64() < g1Ratio {
			phrase := g.stage1Phrase()
			recs = append(recs, Record{
				Instruction: InstructionStage1,
				Input:       phrase,
				Output:      braille.EncodeGrade1(phrase),
			})
			continue
		}

		var phrase string
		if g.rng.Float64() > 0.5 {
			phrase = stage2Phrases[g.rng.Intn(len(stage2Phrases))]
		} else {
			n := 3 + g.rng.Intn(6)
			words := make([]string, n)
			for j := range words {
				words[j] = commonWords[g.rng.Intn(len(commonWords))]
			}
			phrase = strings.Join(words, " ")
		}
		recs = append(recs, Record{
			Instruction: InstructionStage2,
			Input:       phrase,
			Output:      braille.EncodeGrade2(phrase),
		})
	}
	return recs
}

// Stage3 generates the instruction-tuning corpus with the weighted task
// distribution, shuffled.
func (g *Generator) Stage3(count int, weights TaskWeights) []Record {
	type task struct {
		weight float64
		gen    func() Record
	}
	tasks := []task{
		{weights.RoundTrip, g.RoundTrip},
		{weights.Discovery, g.Discovery},
		{weights.Compression, g.Compression},
		{weights.Reasoning, g.Reasoning},
		{weights.Swarm, g.Swarm},
	}

	counts := make([]int, len(tasks))
	total := 0
	for i, t := range tasks {
		counts[i] = int(float64(count) * t.weight)
		total += counts[i]
	}
	if total < count {
		counts[0] += count - total
	}

	recs := make([]Record, 0, count)
	for i, t := range tasks {
		for j := 0; j < counts[i]; j++ {
			recs = append(recs, t.gen())
		}
	}
	g.rng.Shuffle(len(recs), func(i, j int) {
		recs[i], recs[j] = recs[j], recs[i]
	})
	return recs
}
