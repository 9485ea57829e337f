package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolbeans/bookindex/pkg/group"
)

func groupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups [document]",
		Short: "Show the group hierarchy",
		Long: `Show the configured groups as the nested hierarchy used for partitioning.

With a document, the number of index terms placed directly in each group is
shown as well.

Example:
  bookindex groups --groups groups.yaml
  bookindex groups --groups index-config.xml book.xml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				groups, err := loadGroups(cfg)
				if err != nil {
					return err
				}
				defs := groups.Groups
				tree := make([]*group.Group, len(defs))
				for i := range defs {
					tree[i] = group.New(&defs[i])
				}

				fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Groups from %s", cfg.Index.Groups)))
				printGroupTree(out, group.BuildHierarchy(tree), false)
				return nil
			}

			result, _, err := runIndex(cfg, logger, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Groups of %s", args[0])))
			printGroupTree(out, result.Groups, true)
			printUnclassified(out, result.Store, result.Unclassified)
			return nil
		},
	}

	addIndexFlags(cmd)
	return cmd
}
