package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"b200/internal/config"
	"b200/internal/domain"
	"b200/internal/repository"
)

// export dumps the configured store as CSV, e.g. to move rows from the
// sheet into the database backend.
func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	rows, err := store.LoadAll(ctx)
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	f := os.Stdout
	if *out != "" {
		if f, err = os.Create(*out); err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
	}

	if err := writeRows(csv.NewWriter(f), rows); err != nil {
		log.Fatalf("write: %v", err)
	}
	log.Printf("export completed: backend=%s rows=%d", cfg.StoreBackend, len(rows))
}

func writeRows(w *csv.Writer, rows []domain.Record) error {
	if err := w.Write(domain.Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
