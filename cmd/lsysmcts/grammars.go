package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gitrdm/lsysmcts/pkg/lsystem"
)

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "List the grammars available to solve --config's grammar field",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := lsystem.Names()
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
