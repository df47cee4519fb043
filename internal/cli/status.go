package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/ledger"
)

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	var (
		dataDir   string
		prefsPath string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dataset and ledger state",
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

			fmt.Printf("Dataset %s (%s)\n", ds.Name(), ds.Path())
			fmt.Printf("  decks:            %d\n", ds.Len())
			fmt.Printf("  events completed: %d\n", led.CompletedCount())
			fmt.Printf("  events dead:      %d\n", len(led.Failed(ledger.FailDead)))

			failedEvents := led.Failed(ledger.FailEvent)
			failedListings := led.Failed(ledger.FailListing)
			fmt.Printf("  events failed:    %d\n", len(failedEvents))
			fmt.Printf("  listings failed:  %d\n", len(failedListings))
			for _, id := range failedListings {
				fmt.Printf("    listing %s\n", id)
			}
			for _, id := range failedEvents {
				fmt.Printf("    event %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.decklab)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "Preferences file to read")
	cmd.Flags().String("dataset", "", "Dataset name")

	return cmd
}
