// Package pipeline orchestrates incremental ingestion: discover event pages
// month by month, fetch and parse the new ones, and keep the dataset and its
// ledger consistent across repeated runs.
//
// Processing is single-threaded and strictly sequential. The pipeline is the
// sole writer of its dataset and ledger; both are persisted after every
// month's batch so a crash loses at most the in-flight month. Concurrent
// runs against the same dataset are not supported.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/decklabs/mtgo-decklab/internal/decks"
	"github.com/decklabs/mtgo-decklab/internal/ledger"
	"github.com/decklabs/mtgo-decklab/internal/mtgo"
	"github.com/decklabs/mtgo-decklab/internal/stats"
)

// Source lists candidate event pages for a month and fetches event pages.
// Implemented by mtgo.Client; faked in tests.
type Source interface {
	ListEvents(ctx context.Context, month time.Time, format string) ([]string, error)
	FetchEvent(ctx context.Context, eventID string) ([]string, error)
}

// Pipeline ingests decklists from a Source into a dataset.
type Pipeline struct {
	src    Source
	parser *mtgo.Parser
}

// New creates a pipeline.
func New(src Source, parser *mtgo.Parser) *Pipeline {
	if parser == nil {
		parser = mtgo.NewParser()
	}
	return &Pipeline{src: src, parser: parser}
}

// Stats summarizes one pipeline run.
type Stats struct {
	Months          int
	EventsCompleted int
	EventsDead      int
	EventsFailed    int
	ListingsFailed  int
	DecksAdded      int
}

// Ingest processes every month in months: list the month's events for
// format, subtract ids the ledger already knows, fetch and parse the rest.
// Already-completed ids are skipped by construction, so running Ingest twice
// over an unchanged source adds no duplicate decks.
//
// The dataset and ledger are saved after each month; a listing failure marks
// the month retryable and moves on rather than aborting the range.
func (p *Pipeline) Ingest(ctx context.Context, ds *decks.Dataset, led *ledger.Ledger, format string, months []time.Time) (*Stats, error) {
	st := &Stats{}

	for _, month := range months {
		st.Months++
		monthKey := stats.FormatMonth(month)

		// Re-attempting this month clears its previous listing failure; it
		// is re-added below if the listing fails again.
		led.ClearFailed(ledger.FailListing, monthKey)

		ids, err := p.src.ListEvents(ctx, month, format)
		if err != nil {
			log.Printf("[Pipeline] listing %s failed: %v", monthKey, err)
			led.MarkFailed(ledger.FailListing, monthKey)
			st.ListingsFailed++
			if err := p.persist(ds, led); err != nil {
				return st, err
			}
			continue
		}

		log.Printf("[Pipeline] %s: %d candidate events", monthKey, len(ids))
		p.processEvents(ctx, ds, led, ids, st)

		if err := p.persist(ds, led); err != nil {
			return st, err
		}
	}

	log.Printf("[Pipeline] done: %d months, %d completed, %d dead, %d failed, %d decks added",
		st.Months, st.EventsCompleted, st.EventsDead, st.EventsFailed, st.DecksAdded)
	return st, nil
}

// Retry re-attempts every retryable failure recorded in the ledger: failed
// month listings are re-listed (re-discovering their event ids), and failed
// event pages are re-fetched directly. Dead ids are never retried.
func (p *Pipeline) Retry(ctx context.Context, ds *decks.Dataset, led *ledger.Ledger, format string) (*Stats, error) {
	st := &Stats{}

	listings := led.TakeFailed(ledger.FailListing)
	var months []time.Time
	for _, key := range listings {
		month, err := stats.ParseMonth(key)
		if err != nil {
			log.Printf("[Pipeline] dropping unparseable listing id %q", key)
			continue
		}
		months = append(months, month)
	}

	if len(months) > 0 {
		log.Printf("[Pipeline] retrying %d failed listings", len(months))
		if _, err := p.Ingest(ctx, ds, led, format, months); err != nil {
			return st, err
		}
	}

	events := led.TakeFailed(ledger.FailEvent)
	if len(events) > 0 {
		log.Printf("[Pipeline] retrying %d failed events", len(events))
		p.processEvents(ctx, ds, led, events, st)
		if err := p.persist(ds, led); err != nil {
			return st, err
		}
	}

	return st, nil
}

// processEvents fetches and parses each candidate event id not already known
// to the ledger, recording the outcome per id.
func (p *Pipeline) processEvents(ctx context.Context, ds *decks.Dataset, led *ledger.Ledger, ids []string, st *Stats) {
	for _, id := range ids {
		if led.IsKnown(id) {
			continue
		}
		// This id is being re-attempted; its retryable entry, if any, is
		// stale now.
		led.ClearFailed(ledger.FailEvent, id)

		blocks, err := p.src.FetchEvent(ctx, id)
		switch {
		case errors.Is(err, mtgo.ErrGone):
			log.Printf("[Pipeline] %s is gone: %v", id, err)
			led.MarkFailed(ledger.FailDead, id)
			st.EventsDead++
			continue
		case err != nil:
			log.Printf("[Pipeline] %s failed: %v", id, err)
			led.MarkFailed(ledger.FailEvent, id)
			st.EventsFailed++
			continue
		}

		if len(blocks) == 0 {
			// Reachable but nothing to scrape: dead, not retryable.
			log.Printf("[Pipeline] %s has no decklists", id)
			led.MarkFailed(ledger.FailDead, id)
			st.EventsDead++
			continue
		}

		parsed, err := p.parser.ParseEvent(id, blocks)
		if err != nil {
			// The page answered but its id encodes no usable date; retrying
			// cannot help.
			log.Printf("[Pipeline] %s unparseable: %v", id, err)
			led.MarkFailed(ledger.FailDead, id)
			st.EventsDead++
			continue
		}

		ds.Append(parsed...)
		led.MarkCompleted(id)
		st.EventsCompleted++
		st.DecksAdded += len(parsed)
		log.Printf("[Pipeline] %s: %d decks", id, len(parsed))
	}
}

func (p *Pipeline) persist(ds *decks.Dataset, led *ledger.Ledger) error {
	if err := ds.Save(); err != nil {
		return fmt.Errorf("failed to persist dataset: %w", err)
	}
	if err := led.Save(); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}
