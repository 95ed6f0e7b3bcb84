package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wealthmate/wealthmate/internal/categorize"
	"github.com/wealthmate/wealthmate/internal/config"
	"github.com/wealthmate/wealthmate/internal/ingest"
	"github.com/wealthmate/wealthmate/internal/logger"
	"github.com/wealthmate/wealthmate/internal/store"
	"github.com/wealthmate/wealthmate/internal/textgen"
	"github.com/wealthmate/wealthmate/internal/textgen/gemini"
)

// Ingests a local statement file and prints what the engine made of it.
// Mainly a debugging aid: the in-memory store means nothing persists
// unless --store=postgres.
func main() {
	log := logger.New()

	file := flag.String("file", "", "Path to the statement file (.xlsx)")
	owner := flag.String("owner", "cli", "Owner ID to attribute transactions to")
	backend := flag.String("store", "", "Store backend override: postgres or memory")
	flag.Parse()

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to read statement file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var txStore store.TransactionStore
	if cfg.Store.Backend == "postgres" {
		pg, err := store.NewPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to postgres")
		}
		defer pg.Close()
		txStore = pg
	} else {
		txStore = store.NewMemory()
	}

	var gen textgen.Generator
	if cfg.Gemini.APIKey != "" {
		gen = gemini.NewClient(cfg.Gemini.Model)
	}

	ingestor := ingest.New(txStore, categorize.New(gen, cfg.Ingest.MaxDescriptors, log), ingest.Options{
		MinKeywordHits: cfg.Ingest.MinKeywordHits,
		SkipDuplicates: cfg.Ingest.SkipDuplicates,
	}, log)

	log.Info().Str("file", *file).Str("owner", *owner).Msg("Starting ingestion")

	res, err := ingestor.Ingest(ctx, *owner, data)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	for _, tx := range res.Transactions {
		fmt.Printf("%s  %-8s %10.2f  %-14s %s\n",
			tx.DateString(), tx.Kind, tx.Amount, tx.Category, tx.Description)
	}
	fmt.Printf("committed=%d skipped=%d duplicates=%d failed=%d tier=%s\n",
		len(res.Transactions), res.SkippedRows, res.DuplicateRows, res.FailedCommits, res.Tier)
}
