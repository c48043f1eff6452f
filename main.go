// Command braillegen serves the braille transcoder and dataset store over
// HTTP. The dataset pipeline itself lives in the one-shot tools under
// cmd/.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tactile-data/braillegen/internal/api"
	"github.com/tactile-data/braillegen/internal/db"
	"github.com/tactile-data/braillegen/internal/version"
)

type envConfig struct {
	Listen string `env:"BRAILLEGEN_LISTEN" envDefault:":8080"`
	DBFile string `env:"BRAILLEGEN_DB" envDefault:"braillegen.db"`
}

func main() {
	var defaults envConfig
	if err := env.Parse(&defaults); err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}

	listen := flag.String("listen", defaults.Listen, "Listen address")
	dbFile := flag.String("db", defaults.DBFile, "SQLite database path")
	devMode := flag.Bool("dev", false, "Mount the debug surface (tailsql, backup)")
	flag.Parse()

	// Subcommand dispatch ahead of the server path.
	if flag.Arg(0) == "migrate" {
		db.RunMigrateCommand(flag.Args()[1:], *dbFile)
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	database, err := db.OpenDB(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(db.MigrationsFS()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	apiMux := api.NewServer(database).ServeMux()
	mux.Handle("/api/", apiMux)
	mux.Handle("/healthz", apiMux)
	if *devMode {
		database.RegisterDebugHandlers(mux, "braille dataset store")
	}

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	go func() {
		log.Printf("braillegen %s listening on %s", version.Version, *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("Graceful shutdown complete")
}
