// Package ledger tracks which source event pages have been processed for a
// dataset, and how they failed if not.
//
// A ledger holds three disjoint families of identifiers: completed event
// pages, retryable failures (event fetches that timed out and month listings
// that could not be read), and dead pages that exist but have nothing to
// scrape. Completed and dead ids are never retried; retryable ids are
// re-attempted by the pipeline's retry entry point.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FailureKind classifies an entry in the failed sets.
type FailureKind string

const (
	// FailEvent marks an event page fetch that failed transiently.
	FailEvent FailureKind = "event"

	// FailListing marks a month listing page that could not be read.
	FailListing FailureKind = "listing"

	// FailDead marks a page that was reached but is permanently gone or
	// empty. Dead ids are excluded from automatic retry.
	FailDead FailureKind = "dead"
)

// document is the persisted shape of a ledger.
type document struct {
	Completed []string `json:"completed"`
	Failed    struct {
		Event   []string `json:"event"`
		Listing []string `json:"listing"`
		Dead    []string `json:"dead"`
	} `json:"failed"`
}

// Ledger is the in-memory working copy of one dataset's ledger document.
// Load, mutate, Save; a single writer per dataset is assumed.
type Ledger struct {
	path      string
	completed map[string]struct{}
	event     map[string]struct{}
	listing   map[string]struct{}
	dead      map[string]struct{}
}

// Load reads the ledger document for the named dataset from dir, creating an
// empty ledger if none exists yet.
func Load(dir, dataset string) (*Ledger, error) {
	if dataset == "" {
		return nil, errors.New("dataset name cannot be empty")
	}

	l := &Ledger{
		path:      filepath.Join(dir, dataset+".ledger.json"),
		completed: make(map[string]struct{}),
		event:     make(map[string]struct{}),
		listing:   make(map[string]struct{}),
		dead:      make(map[string]struct{}),
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for %s: %w", dataset, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ledger for %s: %w", dataset, err)
	}

	fill(l.completed, doc.Completed)
	fill(l.event, doc.Failed.Event)
	fill(l.listing, doc.Failed.Listing)
	fill(l.dead, doc.Failed.Dead)
	return l, nil
}

func fill(set map[string]struct{}, ids []string) {
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

// MarkCompleted records ids as successfully processed. Any presence in the
// retryable sets is cleared: a completed id is never also a failure.
func (l *Ledger) MarkCompleted(ids ...string) {
	for _, id := range ids {
		l.completed[id] = struct{}{}
		delete(l.event, id)
		delete(l.listing, id)
		delete(l.dead, id)
	}
}

// MarkFailed records ids in the failed set for kind. Dead ids are also
// cleared from the retryable sets; event and listing failures only ever add.
func (l *Ledger) MarkFailed(kind FailureKind, ids ...string) {
	for _, id := range ids {
		switch kind {
		case FailEvent:
			l.event[id] = struct{}{}
		case FailListing:
			l.listing[id] = struct{}{}
		case FailDead:
			l.dead[id] = struct{}{}
			delete(l.event, id)
			delete(l.listing, id)
		}
	}
}

// ClearFailed removes ids from the failed set for kind. Called when an id is
// re-attempted, before its new outcome is known.
func (l *Ledger) ClearFailed(kind FailureKind, ids ...string) {
	set := l.failedSet(kind)
	for _, id := range ids {
		delete(set, id)
	}
}

// TakeFailed empties the failed set for kind and returns its former contents
// in sorted order. Retry snapshots the set this way; ids that fail again are
// re-added by the usual marking.
func (l *Ledger) TakeFailed(kind FailureKind) []string {
	set := l.failedSet(kind)
	ids := sortedKeys(set)
	for _, id := range ids {
		delete(set, id)
	}
	return ids
}

// Failed returns the current contents of the failed set for kind, sorted.
func (l *Ledger) Failed(kind FailureKind) []string {
	return sortedKeys(l.failedSet(kind))
}

func (l *Ledger) failedSet(kind FailureKind) map[string]struct{} {
	switch kind {
	case FailEvent:
		return l.event
	case FailListing:
		return l.listing
	default:
		return l.dead
	}
}

// IsKnown reports whether id needs no further processing: it was either
// completed or confirmed dead.
func (l *Ledger) IsKnown(id string) bool {
	if _, ok := l.completed[id]; ok {
		return true
	}
	_, ok := l.dead[id]
	return ok
}

// CompletedCount returns the number of completed ids.
func (l *Ledger) CompletedCount() int { return len(l.completed) }

// Save writes the ledger document atomically, with all sets sorted so the
// document is deterministic.
func (l *Ledger) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	var doc document
	doc.Completed = sortedKeys(l.completed)
	doc.Failed.Event = sortedKeys(l.event)
	doc.Failed.Listing = sortedKeys(l.listing)
	doc.Failed.Dead = sortedKeys(l.dead)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
