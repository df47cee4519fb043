package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decklabs/mtgo-decklab/internal/cli"
	"github.com/decklabs/mtgo-decklab/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "decklab",
		Short:   "decklab collects and analyzes competitive MTGO decklists",
		Version: version.GetVersion(),
		Long: `decklab incrementally collects published MTGO decklists into a local
dataset and answers questions about the metagame: which decks play a card,
how prevalent it is, and how many copies the average list runs.`,
	}

	rootCmd.AddCommand(cli.ScrapeCmd())
	rootCmd.AddCommand(cli.RetryCmd())
	rootCmd.AddCommand(cli.AnalyzeCmd())
	rootCmd.AddCommand(cli.CatalogCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
