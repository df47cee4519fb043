package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/ledger"
	"github.com/decklabs/mtgo-decklab/internal/mtgo"
	"github.com/decklabs/mtgo-decklab/internal/pipeline"
)

// RetryCmd returns the retry command.
func RetryCmd() *cobra.Command {
	var (
		dataDir   string
		prefsPath string
	)

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Re-fetch pages that failed during a previous scrape",
		Long: `Re-fetch event pages and month listings recorded as failed in the
ledger. Pages that succeed are removed from the failed sets; pages that are
gone for good are marked dead and never tried again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, _, err := loadPreferences(cmd, prefsPath)
			if err != nil {
				return err
			}

			dir, err := resolveDataDir(dataDir)
			if err != nil {
				return err
			}

			ds, led, err := openData(dir, prefs.Dataset)
			if err != nil {
				return err
			}

			pending := len(led.Failed(ledger.FailEvent)) + len(led.Failed(ledger.FailListing))
			if pending == 0 {
				fmt.Println("Nothing to retry.")
				return nil
			}

			client := mtgo.NewClient(mtgo.DefaultConfig())
			pipe := pipeline.New(client, mtgo.NewParser(prefs.Parser.ExtraHeaders...))

			st, err := pipe.Retry(cmd.Context(), ds, led, prefs.Format)
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

	return cmd
}
