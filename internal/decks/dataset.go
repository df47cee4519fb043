package decks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dataset is an ordered sequence of Deck records persisted as a single JSON
// document per named collection. The ingestion pipeline appends; the filter
// engine only reads. Records are never edited or removed in place.
//
// A dataset has a single writer: concurrent processes saving the same
// dataset would race on the read-modify-write persistence step and are not
// supported.
type Dataset struct {
	name  string
	path  string
	decks []Deck
}

// OpenDataset loads the named dataset document from dir, or starts an empty
// one if the document does not exist yet.
func OpenDataset(dir, name string) (*Dataset, error) {
	if name == "" {
		return nil, errors.New("dataset name cannot be empty")
	}

	ds := &Dataset{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}

	data, err := os.ReadFile(ds.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ds, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}

	if err := json.Unmarshal(data, &ds.decks); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", name, err)
	}
	return ds, nil
}

// Name returns the collection name.
func (ds *Dataset) Name() string { return ds.name }

// Path returns the backing document path.
func (ds *Dataset) Path() string { return ds.path }

// Len returns the number of records.
func (ds *Dataset) Len() int { return len(ds.decks) }

// Decks returns the records in insertion order. The returned slice is shared;
// callers treat it as read-only.
func (ds *Dataset) Decks() []Deck { return ds.decks }

// Append adds records to the end of the dataset. The document on disk is not
// touched until Save.
func (ds *Dataset) Append(records ...Deck) {
	ds.decks = append(ds.decks, records...)
}

// Save writes the whole document atomically: marshal to a temp file in the
// same directory, then rename over the target.
func (ds *Dataset) Save() error {
	if err := os.MkdirAll(filepath.Dir(ds.path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	records := ds.decks
	if records == nil {
		records = []Deck{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode dataset %s: %w", ds.name, err)
	}

	tmp := ds.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", ds.name, err)
	}
	if err := os.Rename(tmp, ds.path); err != nil {
		return fmt.Errorf("failed to replace dataset %s: %w", ds.name, err)
	}
	return nil
}
