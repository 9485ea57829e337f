package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <document>",
		Short: "Check that every index term fits a group",
		Long: `Run the index pipeline without writing output and report terms that no
group accepts. Exits with a non-zero status when any term is unclassified.

Example:
  bookindex check --groups groups.yaml book.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			cfg.Index.Strict = true

			result, _, err := runIndex(cfg, logger, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s markers, %s terms, %s groups\n",
				titleStyle.Render(args[0]+":"),
				countStyle.Render(fmt.Sprint(result.Markers)),
				countStyle.Render(fmt.Sprint(len(result.Entries))),
				countStyle.Render(fmt.Sprint(len(result.Groups))))
			printUnclassified(out, result.Store, result.Unclassified)

			if !result.OK {
				return errUnclassified
			}
			return nil
		},
	}

	addIndexFlags(cmd)
	return cmd
}
