// Command validate re-derives the ground truth for every record of a
// JSONL dataset and reports per-probe accuracy.
package main

import (
	"flag"
	"log"

	"github.com/tactile-data/braillegen/internal/dataset"
	"github.com/tactile-data/braillegen/internal/validate"
)

func main() {
	input := flag.String("i", "instruction_tuning.jsonl", "dataset to validate")
	output := flag.String("o", "", "write the full results JSON here (optional)")
	flag.Parse()

	recs, err := dataset.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to read dataset: %v", err)
	}

	summary := validate.Dataset(recs)
	for _, p := range summary.Probes {
		if p.Total == 0 {
			continue
		}
		log.Printf("%-16s %6d/%d (%.2f%%)", p.Name, p.Correct, p.Total, 100*p.Accuracy())
	}
	log.Printf("overall accuracy %.2f%% over %d records", 100*summary.Accuracy(), len(recs))

	if *output != "" {
		if err := validate.WriteResults(*output, summary); err != nil {
			log.Fatalf("failed to write results: %v", err)
		}
		log.Printf("results written to %s", *output)
	}
}
