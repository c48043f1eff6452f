// Command generate produces a braille training dataset as JSONL,
// optionally recording the run and its records in the SQLite store.
package main

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/tactile-data/braillegen/internal/config"
	"github.com/tactile-data/braillegen/internal/dataset"
	"github.com/tactile-data/braillegen/internal/db"
	"github.com/tactile-data/braillegen/internal/timeutil"
)

func main() {
	configPath := flag.String("config", "", "JSON config file; flags override its values")
	stage := flag.Int("stage", 0, "corpus stage: 1, 2 or 3")
	count := flag.Int("n", 0, "number of records")
	seed := flag.Int64("seed", 0, "random seed")
	g1Ratio := flag.Float64("g1-ratio", -1, "stage-2 proportion of Grade-1 examples")
	output := flag.String("o", "", "output JSONL path (.gz compresses)")
	dbFile := flag.String("db", "", "SQLite store to record the run in (optional)")
	flag.Parse()

	cfg := config.DefaultGenerationConfig()
	if *configPath != "" {
		loaded, err := config.LoadGenerationConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stage":
			cfg.Stage = stage
		case "n":
			cfg.Count = count
		case "seed":
			cfg.Seed = seed
		case "g1-ratio":
			cfg.G1Ratio = g1Ratio
		case "o":
			cfg.Output = output
		}
	})

	gen := dataset.NewGenerator(*cfg.Seed)
	var recs []dataset.Record
	switch *cfg.Stage {
	case 1:
		recs = gen.Stage1(*cfg.Count)
	case 2:
		recs = gen.Stage2(*cfg.Count, *cfg.G1Ratio)
	case 3:
		recs = gen.Stage3(*cfg.Count, cfg.TaskWeights())
	default:
		log.Fatalf("stage must be 1, 2 or 3, got %d", *cfg.Stage)
	}

	if err := dataset.WriteFile(*cfg.Output, recs); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}
	log.Printf("wrote %d records to %s", len(recs), *cfg.Output)

	if *dbFile == "" {
		return
	}
	store, err := db.OpenDB(*dbFile)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	if err := store.MigrateUp(db.MigrationsFS()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	run := dataset.NewRun(timeutil.RealClock{}, *cfg.Stage, *cfg.Seed, len(recs))
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		log.Fatalf("failed to marshal config: %v", err)
	}
	if err := store.InsertRun(run, string(configJSON)); err != nil {
		log.Fatalf("failed to record run: %v", err)
	}
	if err := store.InsertRecords(run.ID, recs); err != nil {
		log.Fatalf("failed to store records: %v", err)
	}
	log.Printf("stored run %s in %s", run.ID, *dbFile)
}
