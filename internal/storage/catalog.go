package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/decklabs/mtgo-decklab/internal/cards"
)

// Store provides access to the persisted card catalog.
type Store struct {
	db *DB
}

// NewStore creates a catalog store on top of an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// SaveCatalog replaces the catalog for a format with a fresh snapshot and
// records the sync time. The swap is transactional so readers never see a
// half-replaced catalog.
func (s *Store) SaveCatalog(ctx context.Context, format string, snapshot []cards.Card) error {
	format = strings.ToLower(format)

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_cards WHERE format = ?", format); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	insert := `
		INSERT INTO catalog_cards (
			format, name_key, display_name, mana_cost, cmc, type_line, scryfall_uri
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(format, name_key) DO UPDATE SET
			display_name = excluded.display_name,
			mana_cost = excluded.mana_cost,
			cmc = excluded.cmc,
			type_line = excluded.type_line,
			scryfall_uri = excluded.scryfall_uri
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range snapshot {
		_, err := stmt.ExecContext(ctx, format, c.Key, c.Name, c.ManaCost, c.CMC, c.TypeLine, c.ScryfallURI)
		if err != nil {
			return fmt.Errorf("failed to insert card %q: %w", c.Key, err)
		}
	}

	syncQuery := `
		INSERT INTO catalog_syncs (format, synced_at, cards) VALUES (?, ?, ?)
		ON CONFLICT(format) DO UPDATE SET
			synced_at = excluded.synced_at,
			cards = excluded.cards
	`
	if _, err := tx.ExecContext(ctx, syncQuery, format, time.Now().UTC(), len(snapshot)); err != nil {
		return fmt.Errorf("failed to record sync: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog loads the catalog for a format keyed by canonical card name.
// A format that has never been synced returns an empty catalog.
func (s *Store) LoadCatalog(ctx context.Context, format string) (cards.Catalog, error) {
	query := `
		SELECT name_key, display_name, mana_cost, cmc, type_line, scryfall_uri
		FROM catalog_cards
		WHERE format = ?
	`

	rows, err := s.db.Conn().QueryContext(ctx, query, strings.ToLower(format))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	catalog := make(cards.Catalog)
	for rows.Next() {
		var c cards.Card
		if err := rows.Scan(&c.Key, &c.Name, &c.ManaCost, &c.CMC, &c.TypeLine, &c.ScryfallURI); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		catalog[c.Key] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}
	return catalog, nil
}

// CatalogSyncedAt returns when the catalog for a format was last refreshed,
// or nil if it never was.
func (s *Store) CatalogSyncedAt(ctx context.Context, format string) (*time.Time, error) {
	var syncedAt time.Time
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT synced_at FROM catalog_syncs WHERE format = ?",
		strings.ToLower(format),
	).Scan(&syncedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync time: %w", err)
	}
	return &syncedAt, nil
}
