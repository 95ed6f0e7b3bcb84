// Package ingest turns a raw bank statement file into committed
// transactions. It ties together the statement decoder, the header
// detector, the row normalizer, the categorizer and the transaction
// store.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthmate/wealthmate/internal/categorize"
	"github.com/wealthmate/wealthmate/internal/domain"
	"github.com/wealthmate/wealthmate/internal/statement"
	"github.com/wealthmate/wealthmate/internal/store"
)

// Options tune a single ingestion run.
type Options struct {
	// MinKeywordHits is forwarded to the header detector. Zero means
	// the detector default.
	MinKeywordHits int
	// SkipDuplicates drops rows whose (date, description, kind, amount)
	// already exist for the owner.
	SkipDuplicates bool
}

// Result reports what a run produced.
type Result struct {
	// Transactions that were committed to the store.
	Transactions []domain.Transaction
	// SkippedRows counts rows the normalizer rejected.
	SkippedRows int
	// DuplicateRows counts rows dropped by SkipDuplicates.
	DuplicateRows int
	// FailedCommits counts rows lost to store errors.
	FailedCommits int
	// Tier tells which categorization path labeled the batch.
	Tier categorize.Tier
}

// Ingestor runs statement files end to end.
type Ingestor struct {
	store       store.TransactionStore
	categorizer *categorize.Categorizer
	opts        Options
	log         zerolog.Logger
	now         func() time.Time
}

func New(st store.TransactionStore, cat *categorize.Categorizer, opts Options, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		store:       st,
		categorizer: cat,
		opts:        opts,
		log:         log,
		now:         time.Now,
	}
}

// Ingest decodes fileBytes, normalizes every row after the detected
// header and commits the surviving transactions for ownerID. A missing
// header aborts the whole run before anything is written. Individual
// commit failures are logged and drop only their own row.
func (ing *Ingestor) Ingest(ctx context.Context, ownerID string, fileBytes []byte) (*Result, error) {
	rows, err := statement.DecodeWorkbook(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("Ingest: decode workbook: %w", err)
	}

	detectOpts := statement.DefaultDetectOptions()
	if ing.opts.MinKeywordHits > 0 {
		detectOpts.MinKeywordHits = ing.opts.MinKeywordHits
	}
	headerIdx, err := statement.DetectHeaderRow(rows, detectOpts)
	if err != nil {
		return nil, fmt.Errorf("Ingest: %w", err)
	}
	mapping := statement.MapColumns(rows[headerIdx])

	now := ing.now()
	var batch []*domain.Transaction
	skipped := 0
	for _, row := range rows[headerIdx+1:] {
		tx, ok := statement.NormalizeRow(row, mapping, ownerID, now)
		if !ok {
			skipped++
			continue
		}
		batch = append(batch, &tx)
	}

	duplicates := 0
	if ing.opts.SkipDuplicates {
		batch, duplicates, err = ing.dropDuplicates(ctx, ownerID, batch)
		if err != nil {
			return nil, fmt.Errorf("Ingest: %w", err)
		}
	}

	descriptors := expenseDescriptors(batch)
	outcome := ing.categorizer.Categorize(ctx, descriptors, batch)

	committed := make([]domain.Transaction, 0, len(batch))
	failed := 0
	for _, tx := range batch {
		stored, err := ing.store.Insert(ctx, *tx)
		if err != nil {
			ing.log.Warn().Err(err).
				Str("owner_id", ownerID).
				Str("description", tx.Description).
				Msg("dropping row after failed commit")
			failed++
			continue
		}
		committed = append(committed, stored)
	}

	ing.log.Info().
		Str("owner_id", ownerID).
		Int("committed", len(committed)).
		Int("skipped", skipped).
		Int("duplicates", duplicates).
		Int("failed_commits", failed).
		Str("tier", string(outcome.Tier)).
		Msg("statement ingested")

	return &Result{
		Transactions:  committed,
		SkippedRows:   skipped,
		DuplicateRows: duplicates,
		FailedCommits: failed,
		Tier:          outcome.Tier,
	}, nil
}

// dropDuplicates filters out rows that match an already stored
// transaction on the dedupe key. Rows inside the same file are also
// deduped against each other.
func (ing *Ingestor) dropDuplicates(ctx context.Context, ownerID string, batch []*domain.Transaction) ([]*domain.Transaction, int, error) {
	existing, err := ing.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("dropDuplicates: list transactions: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, tx := range existing {
		seen[tx.DedupeKey()] = struct{}{}
	}

	kept := batch[:0]
	dropped := 0
	for _, tx := range batch {
		key := tx.DedupeKey()
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, tx)
	}
	return kept, dropped, nil
}

// expenseDescriptors collects each distinct expense description once,
// in first-seen order. Income rows never reach the categorizer.
func expenseDescriptors(batch []*domain.Transaction) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tx := range batch {
		if tx.Kind != domain.KindExpense {
			continue
		}
		if _, ok := seen[tx.Description]; ok {
			continue
		}
		seen[tx.Description] = struct{}{}
		out = append(out, tx.Description)
	}
	return out
}
