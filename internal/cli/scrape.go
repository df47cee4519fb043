package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/mtgo"
	"github.com/decklabs/mtgo-decklab/internal/pipeline"
	"github.com/decklabs/mtgo-decklab/internal/stats"
)

// ScrapeCmd returns the scrape command.
func ScrapeCmd() *cobra.Command {
	var (
		dataDir     string
		prefsPath   string
		graceDays   int
		skipCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect published decklists into the local dataset",
		Long: `Collect competitive decklists for a format and append new decks to the
local dataset. Events already recorded in the ledger are skipped, so
repeated runs only fetch what is new.

Without --start, collection begins at the month containing today minus the
grace period, so a run early in a month still re-covers the end of the
previous one. Months are processed oldest first and progress is saved after
each month.

Examples:
  decklab scrape --format Modern
  decklab scrape --format Legacy --dataset legacy --start 2024/01 --end 2024/06`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := loadPreferences(cmd, prefsPath)
			if err != nil {
				return err
			}

			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			start := stats.GraceStart(now, graceDays)
			if prefs.Filter.Start != "" {
				if start, err = stats.ParseMonth(prefs.Filter.Start); err != nil {
					return err
				}
			}
			end := now
			if prefs.Filter.End != "" {
				if end, err = stats.ParseMonth(prefs.Filter.End); err != nil {
					return err
				}
			}
			months := stats.MonthsBetween(start, end)
			if len(months) == 0 {
				return fmt.Errorf("no months to scrape: end %s precedes start %s",
					stats.FormatMonth(end), stats.FormatMonth(start))
			}

			if !skipCatalog {
				// A stale or missing catalog only degrades display, so a
				// refresh failure doesn't stop the scrape.
				if err := refreshCatalog(cmd.Context(), dir, prefs.Format); err != nil {
					fmt.Printf("Catalog refresh failed (continuing): %v\n", err)
				}
			}

			ds, led, err := openData(dir, prefs.Dataset)
			if err != nil {
				return err
			}

			client := mtgo.NewClient(mtgo.DefaultConfig())
			pipe := pipeline.New(client, mtgo.NewParser(prefs.Parser.ExtraHeaders...))

			st, err := pipe.Ingest(cmd.Context(), ds, led, prefs.Format, months)
			if err != nil {
				return err
			}

			printStats(st, ds.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.decklab)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Preferences file to read")
	cmd.Flags().String("dataset", "", "Dataset name")
	cmd.Flags().String("format", "", "Constructed format (e.g. Modern)")
	cmd.Flags().String("start", "", "First month to scrape (YYYY/MM)")
	cmd.Flags().String("end", "", "Last month to scrape (YYYY/MM)")
	cmd.Flags().IntVar(&graceDays, "grace", 7, "Days of grace when no start month is given")
	cmd.Flags().BoolVar(&skipCatalog, "skip-catalog", false, "Skip the card catalog refresh")

	return cmd
}

func printStats(st *pipeline.Stats, total int) {
	fmt.Printf("Processed %d month(s)\n", st.Months)
	fmt.Printf("  events completed: %d\n", st.EventsCompleted)
	fmt.Printf("  events dead:      %d\n", st.EventsDead)
	fmt.Printf("  events failed:    %d\n", st.EventsFailed)
	fmt.Printf("  listings failed:  %d\n", st.ListingsFailed)
	fmt.Printf("  decks added:      %d (dataset now %d)\n", st.DecksAdded, total)

	if st.EventsFailed > 0 || st.ListingsFailed > 0 {
		fmt.Println()
		fmt.Println("Some pages were unavailable. Run `decklab retry` to fetch them again.")
	}
}
