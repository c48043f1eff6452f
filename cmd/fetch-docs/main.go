// Command fetch-docs pulls recent court opinions from CourtListener and
// saves them as JSON documents for corpus use, optionally mirroring them
// into the SQLite store.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/tactile-data/braillegen/internal/db"
	"github.com/tactile-data/braillegen/internal/fetch"
)

func main() {
	court := flag.String("court", "scotus", "court identifier")
	count := flag.Int("n", 10, "number of cases to fetch")
	query := flag.String("q", "", "full-text search query (optional)")
	outDir := flag.String("o", "documents", "output directory")
	hierarchyPath := flag.String("concepts", "", "concept hierarchy JSON (optional)")
	dbFile := flag.String("db", "", "SQLite store to mirror documents into (optional)")
	baseURL := flag.String("base-url", "", "API base URL override")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hierarchy, err := fetch.LoadConceptHierarchy(*hierarchyPath)
	if err != nil {
		log.Fatalf("failed to load concept hierarchy: %v", err)
	}

	var store fetch.DocumentStore
	if *dbFile != "" {
		database, err := db.OpenDB(*dbFile)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}
		defer database.Close()
		if err := database.MigrateUp(db.MigrationsFS()); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		store = database
	}

	client := fetch.NewClient(nil, nil, *baseURL)
	docs, err := client.FetchBatch(ctx, *court, *count, *query, hierarchy)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	for _, doc := range docs {
		path, err := doc.Save(*outDir)
		if err != nil {
			log.Printf("failed to save %q: %v", doc.Metadata.Title, err)
			continue
		}
		log.Printf("saved %s", path)

		if store != nil {
			m := doc.Metadata
			if err := store.SaveDocument(m.SourceURL, m.Title, m.Court, m.Date, m.Jurisdiction, m.SourceURL, m.Concepts, doc.Text); err != nil {
				log.Printf("failed to store %q: %v", m.Title, err)
			}
		}
	}
	log.Printf("fetched %d documents from %s", len(docs), *court)
}
