// Command report summarises a JSONL dataset: prints the aggregates and
// writes an HTML chart page plus a cell-length histogram PNG.
package main

import (
	"flag"
	"log"
	"os"
	"sort"

	"github.com/tactile-data/braillegen/internal/dataset"
	"github.com/tactile-data/braillegen/internal/report"
)

func main() {
	input := flag.String("i", "instruction_tuning.jsonl", "dataset to summarise")
	htmlPath := flag.String("html", "report.html", "HTML report output path")
	histPath := flag.String("hist", "", "cell-length histogram PNG path (optional)")
	flag.Parse()

	recs, err := dataset.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to read dataset: %v", err)
	}

	stats := report.Compute(recs)
	log.Printf("%d records, mean %.1f cells (stddev %.1f)", stats.Total, stats.MeanCells, stats.StdDevCells)
	if stats.G2CompressionRatio > 0 {
		log.Printf("grade-2 compression ratio %.2f cells/rune", stats.G2CompressionRatio)
	}
	tasks := make([]string, 0, len(stats.TaskCounts))
	for task := range stats.TaskCounts {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)
	for _, task := range tasks {
		log.Printf("%-24s %d", task, stats.TaskCounts[task])
	}

	f, err := os.Create(*htmlPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *htmlPath, err)
	}
	if err := report.RenderHTML(f, stats); err != nil {
		log.Fatalf("failed to render report: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("failed to close %s: %v", *htmlPath, err)
	}
	log.Printf("report written to %s", *htmlPath)

	if *histPath != "" {
		if err := report.SaveHistogram(*histPath, stats); err != nil {
			log.Fatalf("failed to save histogram: %v", err)
		}
		log.Printf("histogram written to %s", *histPath)
	}
}
