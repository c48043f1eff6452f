// Package report summarises a generated dataset: cell-length statistics,
// task distribution, and contraction effectiveness, rendered as HTML
// charts and a PNG histogram.
package report

import (
	"sort"
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"

	"github.com/tactile-data/braillegen/internal/braille"
	"github.com/tactile-data/braillegen/internal/dataset"
)

// Stats aggregates one dataset.
type Stats struct {
	Total      int            `json:"total"`
	TaskCounts map[string]int `json:"task_counts"`

	// Output length in braille cells across all records.
	MeanCells   float64 `json:"mean_cells"`
	StdDevCells float64 `json:"stddev_cells"`

	// Mean output-cells / input-runes over grade-2 encode records. Below 1
	// means the contractions are earning their keep.
	G2CompressionRatio float64 `json:"g2_compression_ratio"`

	cellLengths []float64
}

// Compute walks recs once and fills every aggregate.
func Compute(recs []dataset.Record) Stats {
	s := Stats{
		Total:      len(recs),
		TaskCounts: make(map[string]int),
	}

	var g2Ratios []float64
	for _, rec := range recs {
		task := rec.TaskType
		if task == "" {
			task = "untagged"
		}
		s.TaskCounts[task]++
		s.cellLengths = append(s.cellLengths, float64(braille.CountCells(rec.Output)))

		if rec.TaskType == dataset.TaskG2Encode {
			if n := utf8.RuneCountInString(rec.Input); n > 0 {
				g2Ratios = append(g2Ratios, float64(braille.CountCells(rec.Output))/float64(n))
			}
		}
	}

	if len(s.cellLengths) > 0 {
		s.MeanCells = stat.Mean(s.cellLengths, nil)
		s.StdDevCells = stat.StdDev(s.cellLengths, nil)
	}
	if len(g2Ratios) > 0 {
		s.G2CompressionRatio = stat.Mean(g2Ratios, nil)
	}
	return s
}

// CellLengths returns the per-record output lengths in cells, in dataset
// order.
func (s Stats) CellLengths() []float64 {
	return s.cellLengths
}

// sortedTasks returns task names in stable order for charting.
func (s Stats) sortedTasks() []string {
	tasks := make([]string, 0, len(s.TaskCounts))
	for task := range s.TaskCounts {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)
	return tasks
}
