package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:               "table <name>",
	Short:             "Print the transition table of an automaton",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		patterns, _ := cmd.Flags().GetBool("patterns")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		automaton, err := a.engine.Inspect(args[0])
		if err != nil {
			return err
		}

		out, err := table.Render(automaton, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		if patterns {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), table.RenderPatterns(automaton))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)

	tableCmd.Flags().StringP("format", "f", table.FormatTable, "Output format: table, markdown or csv")
	tableCmd.Flags().Bool("patterns", false, "Also print the per-state transition summary")
}
