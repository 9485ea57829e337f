package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookindex",
		Short: "Back-of-book index builder",
		Long: `Bookindex builds a back-of-book index from the index markers of a
structured document.

It reads indexterm markup and produces:
  - A deduplicated hierarchy of index terms with page-range and
    cross-reference information
  - Alphabetic (or configured) groups ready for typesetting
  - XML, JSON or YAML output`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Settings file (default $BOOKINDEX_CONFIG or ./bookindex.yaml)")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(groupsCmd())

	return rootCmd
}
