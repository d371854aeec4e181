package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chordbook/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Insert the songs of a JSON export into the document store",
	Long: `Reads a JSON array of song documents, as exported from the store, and
inserts every document as a new song. Legacy records with array-shaped
chords or lyrics are converted to the current shape. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open export: %w", err)
			}
			defer f.Close()
			in = f
		}

		store, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := importer.New(store, cfg.Collection).Import(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d, failed %d\n", res.Imported, res.Skipped, res.Failed)
		return nil
	},
}
