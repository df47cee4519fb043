package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/analysis"
	"github.com/decklabs/mtgo-decklab/internal/storage"
)

// AnalyzeCmd returns the analyze command.
func AnalyzeCmd() *cobra.Command {
	var (
		dataDir   string
		prefsPath string
		save      bool
		mode      string
		groups    []string
		notGroups []string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Filter the dataset and report card prevalence",
		Long: `Filter the local dataset by date range, player, event type and card
lists, then report how prevalent each card is in the resulting sample. With
--mode decks the matching decklists are printed instead, ordered by mana
value using the card catalog.

Card terms match by substring against canonical card names, so "bolt"
matches Lightning Bolt. Whitelist terms must all be present in a deck;
a single blacklist term excludes it.

Named card groups expand to their members, for example:
  decklab analyze --not-group shocklands
  decklab analyze --card "murktide regent" --mode decks

With --save the effective settings are written back to the preferences
file, so the same query can be re-run after the next scrape.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, path, err := loadPreferences(cmd, prefsPath)
			if err != nil {
				return err
			}

			for _, name := range groups {
				members, ok := analysis.ExpandGroup(name)
				if !ok {
					return fmt.Errorf("unknown card group %q (known: %s)",
						name, strings.Join(analysis.GroupNames(), ", "))
				}
				prefs.Filter.Whitelist = append(prefs.Filter.Whitelist, members...)
			}
			for _, name := range notGroups {
				members, ok := analysis.ExpandGroup(name)
				if !ok {
					return fmt.Errorf("unknown card group %q (known: %s)",
						name, strings.Join(analysis.GroupNames(), ", "))
				}
				prefs.Filter.Blacklist = append(prefs.Filter.Blacklist, members...)
			}

			if save {
				if err := prefs.Save(path); err != nil {
					return err
				}
				fmt.Printf("Saved preferences to %s\n", path)
			}

			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return err
			}

			ds, _, err := openData(dir, prefs.Dataset)
			if err != nil {
				return err
			}

			query, err := buildQuery(prefs, time.Now().UTC())
			if err != nil {
				return err
			}
			sample := analysis.Filter(ds.Decks(), query)

			switch mode {
			case "prevalence":
				report := analysis.Aggregate(sample, query.Zones)
				fmt.Println(report.String())
			case "decks":
				db, err := storage.Open(storage.DefaultConfig(catalogPath(dir)))
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()

				catalog, err := storage.NewStore(db).LoadCatalog(cmd.Context(), prefs.Format)
				if err != nil {
					return err
				}
				if len(catalog) == 0 {
					fmt.Println("Catalog is empty; run `decklab catalog refresh` for mana value ordering.")
				}
				fmt.Print(analysis.RenderDecks(sample, catalog))
			default:
				return fmt.Errorf("unknown mode %q (expected \"prevalence\" or \"decks\")", mode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.decklab)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Preferences file to read")
	cmd.Flags().BoolVar(&save, "save", false, "Write the effective settings back to the preferences file")
	cmd.Flags().StringVar(&mode, "mode", "prevalence", "Output mode: prevalence or decks")
	cmd.Flags().String("dataset", "", "Dataset name")
	cmd.Flags().String("format", "", "Constructed format (e.g. Modern)")
	cmd.Flags().String("start", "", "Earliest event month to include (YYYY/MM)")
	cmd.Flags().String("end", "", "Latest event month to include (YYYY/MM)")
	cmd.Flags().String("player", "", "Keep only decks whose player name contains this")
	cmd.Flags().StringSlice("event", nil, "Event types to include (league, scheduled)")
	cmd.Flags().StringSlice("zone", nil, "Zones to search (main, side)")
	cmd.Flags().StringSlice("card", nil, "Cards every deck must contain")
	cmd.Flags().StringSlice("not", nil, "Cards no deck may contain")
	cmd.Flags().StringSliceVar(&groups, "group", nil, "Card groups every deck must contain")
	cmd.Flags().StringSliceVar(&notGroups, "not-group", nil, "Card groups no deck may contain")

	return cmd
}
