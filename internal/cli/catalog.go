package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/scryfall"
	"github.com/decklabs/mtgo-decklab/internal/storage"
)

// CatalogCmd returns the catalog command.
func CatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local card catalog",
		Long: `Manage the local card catalog. The catalog stores names, mana costs and
types for every card that is or was legal in a format. It is used to order
decklists by mana value and is refreshed from Scryfall bulk data.`,
	}

	cmd.AddCommand(catalogRefreshCmd())
	cmd.AddCommand(catalogStatusCmd())

	return cmd
}

func catalogRefreshCmd() *cobra.Command {
	var (
		dataDir string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the catalog from Scryfall bulk data",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return err
			}
			return refreshCatalog(cmd.Context(), dir, format)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.decklab)")
	cmd.Flags().StringVar(&format, "format", "Modern", "Constructed format")

	return cmd
}

// refreshCatalog downloads a fresh catalog snapshot from Scryfall and swaps
// it into the local database.
func refreshCatalog(ctx context.Context, dataDir, format string) error {
	client := scryfall.NewClient(nil)
	snapshot, err := client.RefreshCatalog(ctx, format)
	if err != nil {
		return err
	}

	db, err := storage.Open(storage.DefaultConfig(catalogPath(dataDir)))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := storage.NewStore(db).SaveCatalog(ctx, format, snapshot); err != nil {
		return err
	}

	fmt.Printf("Catalog for %s refreshed: %d cards\n", format, len(snapshot))
	return nil
}

func catalogStatusCmd() *cobra.Command {
	var (
		dataDir string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show when the catalog was last refreshed",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return err
			}

			db, err := storage.Open(storage.DefaultConfig(catalogPath(dir)))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			store := storage.NewStore(db)
			syncedAt, err := store.CatalogSyncedAt(cmd.Context(), format)
			if err != nil {
				return err
			}
			if syncedAt == nil {
				fmt.Printf("Catalog for %s has never been refreshed.\n", format)
				return nil
			}

			catalog, err := store.LoadCatalog(cmd.Context(), format)
			if err != nil {
				return err
			}
			fmt.Printf("Catalog for %s: %d cards, refreshed %s\n",
				format, len(catalog), syncedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.decklab)")
	cmd.Flags().StringVar(&format, "format", "Modern", "Constructed format")

	return cmd
}
