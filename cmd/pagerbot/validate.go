package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zinin/pagerbot/internal/deck"
)

var validateCmd = &cobra.Command{
	Use:   "validate [deck-file]",
	Short: "Check a deck file and print a summary",
	Long:  `Loads the deck file (argument, --decks, or the default deck path) and reports page and row counts without connecting anywhere.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := currentPaths().DeckPath
		if deckFile != "" {
			path = deckFile
		}
		if len(args) == 1 {
			path = args[0]
		}
		return validateDecks(cmd.OutOrStdout(), path)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateDecks(w io.Writer, path string) error {
	lib, err := deck.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d decks\n", path, len(lib.Names()))
	for _, d := range lib.Decks() {
		rows := 0
		for _, p := range d.Pages {
			rows += len(p.Rows())
		}
		fmt.Fprintf(w, "  %-20s %3d pages %3d control rows", d.Name, len(d.Pages), rows)
		if len(d.AdditionalControls) > 0 {
			fmt.Fprintf(w, " +%d shared controls", len(d.AdditionalControls))
		}
		fmt.Fprintln(w)
	}
	return nil
}
